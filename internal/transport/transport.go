package transport

import (
	"github.com/ds124wfegd/imagetools/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(imgHandler *ImageHandler, allowOrigins []string) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(allowOrigins))

	router.GET("/", imgHandler.Status)
	router.POST("/process", imgHandler.ProcessImage)
	router.POST("/resize", imgHandler.ResizeImage)
	router.POST("/convert", imgHandler.ConvertImage)
	router.POST("/compress-image", imgHandler.CompressImage)
	router.POST("/filter", imgHandler.ApplyFilter)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "imagetools",
		})
	})
	return router
}
