package middleware

import (
	"github.com/ds124wfegd/imagetools/internal/pkg/reqmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(reqmeta.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(reqmeta.HeaderXRequestID, requestID)
		c.Set(RequestIDKey, requestID)
		c.Request = c.Request.WithContext(reqmeta.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
