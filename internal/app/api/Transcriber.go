package api

import (
	"context"
	"io"
)

// AudioInput is a single uploaded audio stream handed to a provider.
type AudioInput struct {
	Reader    io.Reader
	Filename  string
	MediaType string
}

// Transcriber defines a transcription interface for converting an audio stream to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio AudioInput) (string, error)
}

// TranscriberFunc adapts a plain function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context, audio AudioInput) (string, error)

// Transcribe calls f(ctx, audio).
func (f TranscriberFunc) Transcribe(ctx context.Context, audio AudioInput) (string, error) {
	return f(ctx, audio)
}
