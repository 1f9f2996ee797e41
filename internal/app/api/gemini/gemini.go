// Package gemini transcribes audio with Google's Gemini models by sending the
// recording as inline data next to a fixed transcription instruction.
package gemini

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.5-flash"

	// Inline request payloads are capped by the API at 20MB.
	maxInlineBytes = 20 << 20

	instruction = "Transcribe the speech in this audio file verbatim. " +
		"Return only the transcribed text, without timestamps, speaker labels or commentary."
)

// Transcriber implements api.Transcriber on top of the genai client.
type Transcriber struct {
	client   *genai.Client
	model    string
	language string
	prompt   string
}

// NewTranscriber creates a Gemini transcriber from an existing client.
func NewTranscriber(client *genai.Client, model, language, prompt string) *Transcriber {
	if model == "" {
		model = defaultModel
	}
	return &Transcriber{
		client:   client,
		model:    model,
		language: language,
		prompt:   prompt,
	}
}

// Model returns the model id used for every request.
func (t *Transcriber) Model() string {
	return t.model
}

// Transcribe reads the whole stream and sends it as an inline audio part.
func (t *Transcriber) Transcribe(ctx context.Context, audio api.AudioInput) (string, error) {
	if audio.Reader == nil {
		return "", &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  "audio reader is required",
			Provider: providerName,
		}
	}

	data, err := io.ReadAll(io.LimitReader(audio.Reader, maxInlineBytes+1))
	if err != nil {
		return "", &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  fmt.Sprintf("failed to read audio: %v", err),
			Provider: providerName,
			Cause:    err,
		}
	}
	if len(data) > maxInlineBytes {
		return "", &provider.TranscriptionError{
			Code:     "file_too_large",
			Message:  "Audio file is too large for inline Gemini requests",
			Provider: providerName,
		}
	}

	mediaType := audio.MediaType
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(data).String()
	}

	parts := []*genai.Part{
		genai.NewPartFromText(t.instruction()),
		genai.NewPartFromBytes(data, mediaType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", &provider.TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("Gemini generateContent failed: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}

	return strings.TrimSpace(resp.Text()), nil
}

func (t *Transcriber) instruction() string {
	var b strings.Builder
	b.WriteString(instruction)
	if t.language != "" {
		fmt.Fprintf(&b, " The spoken language is %q.", t.language)
	}
	if t.prompt != "" {
		b.WriteString(" Context: ")
		b.WriteString(t.prompt)
	}
	return b.String()
}
