package codec

import (
	"errors"

	"github.com/ds124wfegd/imagetools/internal/entity"
)

var (
	ErrEmptyInput        = errors.New("empty image data")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrUnsupportedMode   = errors.New("unsupported color mode")
	ErrInvalidSize       = errors.New("target size must be positive")
	ErrInvalidAngle      = errors.New("rotation must be 90, 180 or 270 degrees")
)

// Header is what a verify pass learns without decoding pixels.
type Header struct {
	Format entity.Format
	Width  int
	Height int
}

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Codec is the narrow set of pixel operations the service relies on.
// Every transform returns a new image and leaves its input untouched.
type Codec interface {
	Verify(data []byte) (Header, error)
	Decode(data []byte) (*entity.DecodedImage, error)
	Encode(img *entity.DecodedImage, format entity.Format, opts ...EncodeOption) ([]byte, error)
	Resize(img *entity.DecodedImage, width, height int) (*entity.DecodedImage, error)
	Fit(img *entity.DecodedImage, maxWidth, maxHeight int) *entity.DecodedImage
	Rotate(img *entity.DecodedImage, degrees int) (*entity.DecodedImage, error)
	Flip(img *entity.DecodedImage, axis Axis) (*entity.DecodedImage, error)
	Convert(img *entity.DecodedImage, mode entity.ColorMode) (*entity.DecodedImage, error)
}

type encodeConfig struct {
	quality    int
	hasQuality bool
	optimize   bool
}

// EncodeOption sets an optional encoder parameter.
type EncodeOption func(*encodeConfig)

// WithQuality sets lossy encoder quality. Values outside 1..100 are clamped by the encoders.
func WithQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
		c.hasQuality = true
	}
}

// WithOptimize trades encode time for smaller output where the format allows it.
func WithOptimize() EncodeOption {
	return func(c *encodeConfig) {
		c.optimize = true
	}
}
