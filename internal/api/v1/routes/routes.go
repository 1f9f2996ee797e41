package routes

import (
	"github.com/gin-gonic/gin"
	"neon-transcriber/internal/api/v1/handlers"
)

// RegisterRoutes registers the upload API under router, which is mounted at /api.
func RegisterRoutes(router *gin.RouterGroup, transcribeHandler *handlers.TranscribeHandler) {
	router.POST("/transcribe", transcribeHandler.Transcribe)
}
