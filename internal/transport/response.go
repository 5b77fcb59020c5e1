package transport

import (
	"encoding/base64"
	"errors"
	"mime"
	"net/http"

	"github.com/ds124wfegd/imagetools/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

var statusByKind = map[entity.Kind]int{
	entity.KindInvalidInput: http.StatusBadRequest,
	entity.KindCorrupted:    http.StatusBadRequest,
	entity.KindProcessing:   http.StatusInternalServerError,
}

// newErrorResponse writes {"error": msg}. Client errors carry their own
// pre-written message; processing faults always answer with fallback.
func newErrorResponse(c *gin.Context, err error, fallback string) {
	status, message := http.StatusInternalServerError, fallback

	var ie *entity.ImageError
	if errors.As(err, &ie) && ie.Kind != entity.KindProcessing {
		if s, ok := statusByKind[ie.Kind]; ok {
			status, message = s, ie.Message
		}
	}

	c.AbortWithStatusJSON(status, entity.ErrorResponse{Error: message})
}

// bindForm fills req from the multipart form. Every field is optional at this
// point; a request that is not multipart leaves req empty and the handler
// reports the missing file.
func bindForm(c *gin.Context, req any) {
	if err := c.ShouldBindWith(req, binding.FormMultipart); err != nil {
		logrus.WithError(err).WithField("path", c.FullPath()).Debug("form binding failed")
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, entity.ErrorResponse{Error: message})
}

func encodeBase64(out *entity.EncodedImage) string {
	return base64.StdEncoding.EncodeToString(out.Data)
}

// sendAttachment streams the encoded image as a download.
func sendAttachment(c *gin.Context, out *entity.EncodedImage) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, out.ContentType(), out.Data)
}
