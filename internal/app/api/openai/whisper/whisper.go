package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"
)

const providerName = "openai"

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
	prompt   string
}

// Option customises a RemoteTranscriber.
type Option func(*RemoteTranscriber)

// WithModel overrides the default whisper-1 model.
func WithModel(model string) Option {
	return func(rt *RemoteTranscriber) {
		if model != "" {
			rt.model = model
		}
	}
}

// WithLanguage sets an ISO-639-1 language hint.
func WithLanguage(language string) Option {
	return func(rt *RemoteTranscriber) { rt.language = language }
}

// WithPrompt sets a prompt that guides the model's style.
func WithPrompt(prompt string) Option {
	return func(rt *RemoteTranscriber) { rt.prompt = prompt }
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, opts ...Option) *RemoteTranscriber {
	rt := &RemoteTranscriber{
		client: client,
		model:  openai.Whisper1,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Model returns the model id sent with every request.
func (rt *RemoteTranscriber) Model() string {
	return rt.model
}

// Transcribe streams audio to the OpenAI transcription endpoint.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audio api.AudioInput) (string, error) {
	if audio.Reader == nil {
		return "", &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  "audio reader is required",
			Provider: providerName,
		}
	}

	// FilePath only names the multipart part when Reader is set; the API
	// uses its extension to detect the container format.
	filename := audio.Filename
	if filename == "" {
		filename = "audio"
	}

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: filename,
		Reader:   audio.Reader,
		Language: rt.language,
		Prompt:   rt.prompt,
		Format:   openai.AudioResponseFormatJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", handleAPIError(err)
	}

	return resp.Text, nil
}

// handleAPIError converts OpenAI API errors to TranscriptionError
func handleAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return &provider.TranscriptionError{
				Code:     "authentication_failed",
				Message:  "OpenAI API key is invalid or missing",
				Provider: providerName,
				Cause:    err,
			}
		case http.StatusTooManyRequests:
			return &provider.TranscriptionError{
				Code:      "rate_limit_exceeded",
				Message:   "OpenAI API rate limit exceeded",
				Provider:  providerName,
				Retryable: true,
				Cause:     err,
			}
		case http.StatusRequestEntityTooLarge:
			return &provider.TranscriptionError{
				Code:     "file_too_large",
				Message:  "Audio file is too large for OpenAI API",
				Provider: providerName,
				Cause:    err,
			}
		case http.StatusBadRequest:
			return &provider.TranscriptionError{
				Code:     "invalid_file",
				Message:  "Invalid audio file format or corrupted file",
				Provider: providerName,
				Cause:    err,
			}
		default:
			return &provider.TranscriptionError{
				Code:      "api_error",
				Message:   fmt.Sprintf("OpenAI API error (status %d): %v", apiErr.HTTPStatusCode, apiErr.Message),
				Provider:  providerName,
				Retryable: true,
				Cause:     err,
			}
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &provider.TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("OpenAI request failed (status %d): %v", reqErr.HTTPStatusCode, reqErr.Err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}

	return &provider.TranscriptionError{
		Code:      "unknown_error",
		Message:   fmt.Sprintf("createTranscription failed: %v", err),
		Provider:  providerName,
		Retryable: true,
		Cause:     err,
	}
}
