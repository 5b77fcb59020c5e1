package service

import (
	"context"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/codec"
)

var (
	SupportedFormats = []string{"PNG", "JPEG", "JPG", "WEBP", "GIF", "BMP"}
	AvailableFilters = []string{"grayscale", "rotate90", "rotate180", "rotate270", "flip_horizontal", "flip_vertical"}
)

func (s *imageService) Inspect(ctx context.Context, req *entity.InspectRequest) (info *entity.ImageInfo, err error) {
	op := s.begin(ctx, "inspect", req.Image)
	defer func() { s.finish(ctx, op, nil, err) }()

	img, err := s.load(req.Image, op)
	if err != nil {
		return nil, err
	}

	format := img.Format
	if format == entity.FormatUnknown {
		return nil, entity.NewProcessing(entity.MsgProcessFailed, codec.ErrUnsupportedFormat)
	}

	return &entity.ImageInfo{
		Format: format,
		Mode:   img.Mode,
		Size:   entity.Size{Width: img.Width(), Height: img.Height()},
	}, nil
}

// Resize resamples to exactly width x height; the aspect ratio is the caller's concern.
// The result keeps the detected source format, PNG when it is unknown.
func (s *imageService) Resize(ctx context.Context, req *entity.ResizeRequest) (out *entity.EncodedImage, err error) {
	op := s.begin(ctx, "resize", req.Image)
	defer func() { s.finish(ctx, op, out, err) }()

	img, err := s.load(req.Image, op)
	if err != nil {
		return nil, err
	}

	width, height, err := s.dimensions(req)
	if err != nil {
		return nil, err
	}

	resized, err := s.codec.Resize(img, width, height)
	if err != nil {
		return nil, entity.NewProcessing(entity.MsgResizeFailed, err)
	}

	format := img.Format
	if format == entity.FormatUnknown {
		format = entity.FormatPNG
	}
	return s.encode(resized, format, entity.MsgResizeFailed)
}

func (s *imageService) Convert(ctx context.Context, req *entity.ConvertRequest) (out *entity.EncodedImage, target string, err error) {
	op := s.begin(ctx, "convert", req.Image)
	defer func() { s.finish(ctx, op, out, err) }()

	img, err := s.load(req.Image, op)
	if err != nil {
		return nil, "", err
	}

	target = strings.ToUpper(strings.TrimSpace(valueOr(req.Format, defaultFormat)))
	if !slices.Contains(SupportedFormats, target) {
		return nil, "", entity.ErrInvalidFormat(SupportedFormats)
	}

	format := entity.ParseFormat(target)
	if format == entity.FormatJPEG && img.HasAlpha() {
		if img, err = s.codec.Convert(img, entity.ModeRGB); err != nil {
			return nil, "", entity.NewProcessing(entity.MsgConvertFailed, err)
		}
	}

	out, err = s.encode(img, format, entity.MsgConvertFailed)
	if err != nil {
		return nil, "", err
	}
	return out, target, nil
}

// Compress re-encodes in the detected source format with the requested quality.
// The output is meant to be served as a download named compressed_<original>.
func (s *imageService) Compress(ctx context.Context, req *entity.CompressRequest) (out *entity.EncodedImage, err error) {
	op := s.begin(ctx, "compress", req.File)
	defer func() { s.finish(ctx, op, out, err) }()

	img, err := s.load(req.File, op)
	if err != nil {
		return nil, err
	}

	quality, err := parseQuality(req.Quality)
	if err != nil {
		return nil, err
	}

	format := img.Format
	if format == entity.FormatUnknown {
		return nil, entity.NewProcessing(entity.MsgCompressFailed, codec.ErrUnsupportedFormat)
	}
	if format == entity.FormatJPEG && img.HasAlpha() {
		if img, err = s.codec.Convert(img, entity.ModeRGB); err != nil {
			return nil, entity.NewProcessing(entity.MsgCompressFailed, err)
		}
	}

	out, err = s.encode(img, format, entity.MsgCompressFailed, codec.WithQuality(quality), codec.WithOptimize())
	if err != nil {
		return nil, err
	}
	out.Filename = "compressed_" + req.File.Filename
	return out, nil
}

// Filter applies one named transform and always answers with PNG.
func (s *imageService) Filter(ctx context.Context, req *entity.FilterRequest) (out *entity.EncodedImage, name string, err error) {
	op := s.begin(ctx, "filter", req.Image)
	defer func() { s.finish(ctx, op, out, err) }()

	img, err := s.load(req.Image, op)
	if err != nil {
		return nil, "", err
	}

	name = strings.ToLower(strings.TrimSpace(valueOr(req.Filter, defaultFilter)))
	apply, ok := s.filters()[name]
	if !ok {
		return nil, "", entity.ErrUnknownFilter(AvailableFilters)
	}

	filtered, err := apply(img)
	if err != nil {
		return nil, "", entity.NewProcessing(entity.MsgFilterFailed, err)
	}

	out, err = s.encode(filtered, entity.FormatPNG, entity.MsgFilterFailed)
	if err != nil {
		return nil, "", err
	}
	return out, name, nil
}

type filterFunc func(*entity.DecodedImage) (*entity.DecodedImage, error)

func (s *imageService) filters() map[string]filterFunc {
	return map[string]filterFunc{
		"grayscale": func(img *entity.DecodedImage) (*entity.DecodedImage, error) {
			gray, err := s.codec.Convert(img, entity.ModeL)
			if err != nil {
				return nil, err
			}
			return s.codec.Convert(gray, entity.ModeRGB)
		},
		"rotate90":  func(img *entity.DecodedImage) (*entity.DecodedImage, error) { return s.codec.Rotate(img, 90) },
		"rotate180": func(img *entity.DecodedImage) (*entity.DecodedImage, error) { return s.codec.Rotate(img, 180) },
		"rotate270": func(img *entity.DecodedImage) (*entity.DecodedImage, error) { return s.codec.Rotate(img, 270) },
		"flip_horizontal": func(img *entity.DecodedImage) (*entity.DecodedImage, error) {
			return s.codec.Flip(img, codec.Horizontal)
		},
		"flip_vertical": func(img *entity.DecodedImage) (*entity.DecodedImage, error) {
			return s.codec.Flip(img, codec.Vertical)
		},
	}
}

// load validates the upload and applies the optional thumbnail bound.
func (s *imageService) load(file *multipart.FileHeader, op *operation) (*entity.DecodedImage, error) {
	img, err := s.validator.Validate(file)
	if err != nil {
		return nil, err
	}
	if s.thumbnailBound > 0 {
		img = s.codec.Fit(img, s.thumbnailBound, s.thumbnailBound)
	}
	op.observe(img)
	return img, nil
}

func (s *imageService) encode(img *entity.DecodedImage, format entity.Format, failure string, opts ...codec.EncodeOption) (*entity.EncodedImage, error) {
	data, err := s.codec.Encode(img, format, opts...)
	if err != nil {
		return nil, entity.NewProcessing(failure, err)
	}
	return &entity.EncodedImage{Data: data, Format: format, Width: img.Width(), Height: img.Height()}, nil
}
