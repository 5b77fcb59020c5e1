package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets browser callers reach the API. Origins may contain a "*"
// wildcard, a lone "*" allows every origin.
func CORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowWildcard = true
	}
	return cors.New(corsConfig)
}
