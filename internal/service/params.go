package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ds124wfegd/imagetools/internal/entity"
)

const (
	defaultQuality = 75
	defaultFormat  = "PNG"
	defaultFilter  = "grayscale"
)

var (
	errDimensionMissing    = errors.New("dimension missing")
	errDimensionOutOfRange = errors.New("dimension out of range")
)

// valueOr returns the submitted value, or def when the field was not sent at all.
func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// parseDimension treats absent, blank, non-numeric and zero values as missing.
// Numbers too large for int are out of range, not missing.
func parseDimension(v *string) (int, error) {
	if v == nil {
		return 0, errDimensionMissing
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errDimensionOutOfRange
		}
		return 0, errDimensionMissing
	}
	if n == 0 {
		return 0, errDimensionMissing
	}
	return n, nil
}

func (s *imageService) dimensions(req *entity.ResizeRequest) (int, int, error) {
	width, werr := parseDimension(req.Width)
	height, herr := parseDimension(req.Height)
	if errors.Is(werr, errDimensionMissing) || errors.Is(herr, errDimensionMissing) {
		return 0, 0, entity.NewInvalidInput(entity.MsgDimensionsMissing)
	}
	if werr != nil || herr != nil ||
		width < 1 || height < 1 || width > s.maxDimension || height > s.maxDimension {
		return 0, 0, entity.ErrInvalidDimensions(s.maxDimension)
	}
	return width, height, nil
}

// parseQuality applies the default only when the field is absent; a blank value is not an integer.
func parseQuality(v *string) (int, error) {
	if v == nil {
		return defaultQuality, nil
	}
	q, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, entity.ErrInvalidQuality()
		}
		return 0, entity.NewInvalidInput(entity.MsgQualityNotInteger)
	}
	if q < 0 || q > 100 {
		return 0, entity.ErrInvalidQuality()
	}
	return q, nil
}
