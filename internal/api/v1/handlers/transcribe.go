package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"neon-transcriber/internal/api/errors"
	"neon-transcriber/internal/api/middleware"
	"neon-transcriber/internal/api/v1/dto"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"
	"neon-transcriber/internal/app/upload"
)

const (
	// FileField is the multipart field carrying the audio.
	FileField = "file"

	msgNoFile              = "No file provided"
	msgTranscriptionFailed = "Transcription failed"
)

// Recorder receives per-upload observations.
type Recorder interface {
	RecordUpload(size int64, mediaType string)
	RecordTranscription(elapsed time.Duration, err error, code string)
	RecordFailure(stage string)
	TrackInFlight() func()
}

// TranscribeHandler serves the upload endpoint.
type TranscribeHandler struct {
	transcriber api.Transcriber
	spooler     *upload.Spooler
	recorder    Recorder
	logger      *slog.Logger
}

// NewTranscribeHandler creates a new upload handler. recorder may be nil.
func NewTranscribeHandler(transcriber api.Transcriber, spooler *upload.Spooler, recorder Recorder, logger *slog.Logger) *TranscribeHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &TranscribeHandler{
		transcriber: transcriber,
		spooler:     spooler,
		recorder:    recorder,
		logger:      logger,
	}
}

// Transcribe handles POST /api/transcribe
//
// @Summary Transcribe an audio file
// @Description Uploads one audio file and returns its transcription as plain text.
// @Tags transcribe
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file to transcribe"
// @Success 200 {object} dto.TranscribeResponse "Transcription text"
// @Failure 400 {object} dto.ErrorResponse "No file provided"
// @Failure 500 {object} dto.ErrorResponse "Transcription failed"
// @Router /transcribe [post]
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	logger := h.logger.With("request_id", c.GetString(middleware.RequestIDKey))

	header, err := c.FormFile(FileField)
	if err != nil {
		logger.Warn("No file in upload", "error", err)
		h.recorder.RecordFailure("input")
		middleware.HandleError(c, errors.NewBadRequestError(msgNoFile))
		return
	}
	logger.Info("Upload received", "filename", header.Filename, "size", header.Size)

	src, err := header.Open()
	if err != nil {
		h.fail(c, logger, "spool", err)
		return
	}
	defer src.Close()

	artifact, err := h.spooler.Spool(src, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, logger, "spool", err)
		return
	}
	defer func() {
		if err := artifact.Remove(); err != nil {
			logger.Error("Failed to remove spooled upload", "path", artifact.Path, "error", err)
		}
	}()
	logger.Info("Upload spooled", "path", artifact.Path, "media_type", artifact.MediaType, "size", artifact.Size)
	h.recorder.RecordUpload(artifact.Size, artifact.MediaType)

	audio, err := artifact.Open()
	if err != nil {
		h.fail(c, logger, "spool", err)
		return
	}
	defer audio.Close()

	logger.Info("Transcribing", "filename", artifact.OriginalName)
	release := h.recorder.TrackInFlight()
	start := time.Now()
	text, err := h.transcriber.Transcribe(c.Request.Context(), api.AudioInput{
		Reader:    audio,
		Filename:  artifact.OriginalName,
		MediaType: artifact.MediaType,
	})
	elapsed := time.Since(start)
	release()
	if err != nil {
		code := provider.ErrorCode(err)
		h.recorder.RecordTranscription(elapsed, err, code)
		logger.Error("Transcription failed", "code", code, "elapsed_ms", elapsed.Milliseconds(), "error", err)
		middleware.HandleError(c, errors.WrapError(err, errors.KindInternal, msgTranscriptionFailed).WithCode(code))
		return
	}

	// the artifact must be gone before success is reported
	audio.Close()
	if err := artifact.Remove(); err != nil {
		h.fail(c, logger, "cleanup", err)
		return
	}
	h.recorder.RecordTranscription(elapsed, nil, "")

	logger.Info("Transcription completed", "elapsed_ms", elapsed.Milliseconds(), "chars", len(text))
	c.JSON(http.StatusOK, dto.TranscribeResponse{Transcription: text})
}

func (h *TranscribeHandler) fail(c *gin.Context, logger *slog.Logger, stage string, err error) {
	h.recorder.RecordFailure(stage)
	logger.Error("Transcription failed", "stage", stage, "error", err)
	middleware.HandleError(c, errors.WrapError(err, errors.KindInternal, msgTranscriptionFailed))
}

type nopRecorder struct{}

func (nopRecorder) RecordUpload(int64, string) {}
func (nopRecorder) RecordTranscription(time.Duration, error, string) {}
func (nopRecorder) RecordFailure(string) {}
func (nopRecorder) TrackInFlight() func() { return func() {} }
