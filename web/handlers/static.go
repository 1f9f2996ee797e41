package handlers

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the page's JS and CSS from an embedded filesystem.
type StaticHandler struct {
	files http.FileSystem
}

// NewStaticHandler serves the static/ subtree of assets.
func NewStaticHandler(assets fs.FS) (*StaticHandler, error) {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}
	return &StaticHandler{files: http.FS(sub)}, nil
}

// Register mounts the assets at prefix.
func (h *StaticHandler) Register(router gin.IRoutes, prefix string) {
	router.StaticFS(prefix, h.files)
}
