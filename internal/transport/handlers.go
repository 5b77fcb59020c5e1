package transport

import (
	"github.com/ds124wfegd/imagetools/internal/service"
)

type ImageHandler struct {
	service service.ImageService
}

func NewImageHandler(service service.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}
