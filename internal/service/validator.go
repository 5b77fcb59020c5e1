package service

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/codec"
	"github.com/sirupsen/logrus"
)

// Validator turns an untrusted upload into a decoded image or an *entity.ImageError.
// Checks run in a fixed order and stop at the first failure.
type Validator struct {
	codec        codec.Codec
	maxFileSize  int64
	maxDimension int
	allowed      []string
	allowedSet   map[string]struct{}
}

func NewValidator(c codec.Codec, limits config.LimitsConfig) *Validator {
	v := &Validator{
		codec:        c,
		maxFileSize:  limits.MaxFileSize,
		maxDimension: limits.MaxImageDimension,
		allowedSet:   make(map[string]struct{}, len(limits.AllowedExtensions)),
	}
	for _, ext := range limits.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, ok := v.allowedSet[ext]; ok {
			continue
		}
		v.allowedSet[ext] = struct{}{}
		v.allowed = append(v.allowed, ext)
	}
	return v
}

func (v *Validator) Validate(file *multipart.FileHeader) (*entity.DecodedImage, error) {
	if file == nil || file.Filename == "" {
		return nil, entity.NewInvalidInput(entity.MsgNoFileSelected)
	}

	if !v.allowedExtension(file.Filename) {
		return nil, entity.ErrInvalidFileType(v.allowed)
	}

	if file.Size > v.maxFileSize {
		return nil, entity.ErrFileTooLarge(v.maxFileSize)
	}

	data, err := v.read(file)
	if err != nil {
		return nil, err
	}

	header, err := v.codec.Verify(data)
	if err != nil {
		logrus.WithError(err).WithField("filename", file.Filename).Debug("image verification failed")
		return nil, entity.NewCorrupted(err)
	}

	if header.Width > v.maxDimension || header.Height > v.maxDimension {
		return nil, entity.ErrDimensionsTooLarge(v.maxDimension)
	}

	img, err := v.codec.Decode(data)
	if err != nil {
		logrus.WithError(err).WithField("filename", file.Filename).Debug("image decode failed")
		return nil, entity.NewCorrupted(err)
	}

	// decoded bounds are authoritative, the header could lie
	if img.Width() > v.maxDimension || img.Height() > v.maxDimension {
		return nil, entity.ErrDimensionsTooLarge(v.maxDimension)
	}

	return img, nil
}

func (v *Validator) allowedExtension(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	_, ok := v.allowedSet[ext]
	return ok
}

// read loads at most maxFileSize+1 bytes so a header that understates the size
// is still caught before decoding.
func (v *Validator) read(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, entity.NewProcessing(entity.MsgProcessFailed, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, v.maxFileSize+1))
	if err != nil {
		return nil, entity.NewProcessing(entity.MsgProcessFailed, err)
	}
	if int64(len(data)) > v.maxFileSize {
		return nil, entity.ErrFileTooLarge(v.maxFileSize)
	}
	return data, nil
}
