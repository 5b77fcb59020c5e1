package transport

import (
	"net/http"

	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *ImageHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"message": "Image tools server is running!",
		"endpoints": gin.H{
			"/":               "Server status",
			"/process":        "POST - Process image",
			"/resize":         "POST - Resize image",
			"/convert":        "POST - Convert image format",
			"/compress-image": "POST - Compress image with quality setting",
			"/filter":         "POST - Apply filter to image",
		},
	})
}

func (h *ImageHandler) ProcessImage(c *gin.Context) {
	var req entity.InspectRequest
	bindForm(c, &req)
	if req.Image == nil {
		badRequest(c, entity.MsgNoImageProvided)
		return
	}

	info, err := h.service.Inspect(c.Request.Context(), &req)
	if err != nil {
		newErrorResponse(c, err, entity.MsgProcessFailed)
		return
	}

	c.JSON(http.StatusOK, entity.InspectResponse{
		Success:   true,
		Message:   "Image processed successfully",
		ImageInfo: *info,
	})
}

func (h *ImageHandler) ResizeImage(c *gin.Context) {
	var req entity.ResizeRequest
	bindForm(c, &req)
	if req.Image == nil {
		badRequest(c, entity.MsgNoImageProvided)
		return
	}

	out, err := h.service.Resize(c.Request.Context(), &req)
	if err != nil {
		newErrorResponse(c, err, entity.MsgResizeFailed)
		return
	}

	c.JSON(http.StatusOK, entity.ResizeResponse{
		Success: true,
		Image:   encodeBase64(out),
		NewSize: entity.Size{Width: out.Width, Height: out.Height},
	})
}

func (h *ImageHandler) ConvertImage(c *gin.Context) {
	var req entity.ConvertRequest
	bindForm(c, &req)
	if req.Image == nil {
		badRequest(c, entity.MsgNoImageProvided)
		return
	}

	out, format, err := h.service.Convert(c.Request.Context(), &req)
	if err != nil {
		newErrorResponse(c, err, entity.MsgConvertFailed)
		return
	}

	c.JSON(http.StatusOK, entity.ConvertResponse{
		Success: true,
		Image:   encodeBase64(out),
		Format:  format,
	})
}

func (h *ImageHandler) CompressImage(c *gin.Context) {
	var req entity.CompressRequest
	bindForm(c, &req)
	if req.File == nil {
		badRequest(c, entity.MsgNoFilePart)
		return
	}

	out, err := h.service.Compress(c.Request.Context(), &req)
	if err != nil {
		newErrorResponse(c, err, entity.MsgCompressFailed)
		return
	}

	sendAttachment(c, out)
}

func (h *ImageHandler) ApplyFilter(c *gin.Context) {
	var req entity.FilterRequest
	bindForm(c, &req)
	if req.Image == nil {
		badRequest(c, entity.MsgNoImageProvided)
		return
	}

	out, filter, err := h.service.Filter(c.Request.Context(), &req)
	if err != nil {
		newErrorResponse(c, err, entity.MsgFilterFailed)
		return
	}

	c.JSON(http.StatusOK, entity.FilterResponse{
		Success:       true,
		Image:         encodeBase64(out),
		FilterApplied: filter,
	})
}
