package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

const indexTemplate = "index.html"

// PageConfig is the data injected into the Transcriber Page.
type PageConfig struct {
	Title        string
	Endpoint     string
	FileField    string
	Accept       string
	FailureText  string
	DownloadName string
	NoFileAlert  string
	Placeholder  string
	StaticPrefix string
}

// DefaultPageConfig returns the page wired to POST /api/transcribe.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Title:        "Neon Audio Transcriber",
		Endpoint:     "/api/transcribe",
		FileField:    "file",
		Accept:       "audio/*",
		FailureText:  "Transcription failed",
		DownloadName: "transcription.txt",
		NoFileAlert:  "Please select a file first",
		Placeholder:  `No transcription available yet. Upload an audio file and click "Transcribe Audio" to get started.`,
		StaticPrefix: "/static",
	}
}

// PageHandler renders the Transcriber Page.
type PageHandler struct {
	tmpl   *template.Template
	config PageConfig
	logger *slog.Logger
}

// NewPageHandler parses templates/index.html from assets.
func NewPageHandler(assets fs.FS, config PageConfig, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(assets, "templates/"+indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &PageHandler{
		tmpl:   tmpl,
		config: config,
		logger: logger,
	}, nil
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{
		Template: h.tmpl,
		Name:     indexTemplate,
		Data:     h.config,
	})
}
