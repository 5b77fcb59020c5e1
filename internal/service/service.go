package service

import (
	"context"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/ds124wfegd/imagetools/internal/pkg/codec"
	"github.com/ds124wfegd/imagetools/internal/pkg/kafka"
)

type ImageService interface {
	Inspect(ctx context.Context, req *entity.InspectRequest) (*entity.ImageInfo, error)
	Resize(ctx context.Context, req *entity.ResizeRequest) (*entity.EncodedImage, error)
	// Convert returns the target format name as the caller spelled it, upper-cased.
	Convert(ctx context.Context, req *entity.ConvertRequest) (*entity.EncodedImage, string, error)
	Compress(ctx context.Context, req *entity.CompressRequest) (*entity.EncodedImage, error)
	// Filter returns the normalized name of the filter it applied.
	Filter(ctx context.Context, req *entity.FilterRequest) (*entity.EncodedImage, string, error)
}

type imageService struct {
	validator      *Validator
	codec          codec.Codec
	producer       kafka.Producer
	maxDimension   int
	thumbnailBound int
}

func NewImageService(c codec.Codec, producer kafka.Producer, limits config.LimitsConfig) ImageService {
	return &imageService{
		validator:      NewValidator(c, limits),
		codec:          c,
		producer:       producer,
		maxDimension:   limits.MaxImageDimension,
		thumbnailBound: limits.ThumbnailBound,
	}
}
