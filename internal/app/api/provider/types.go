package provider

import (
	"errors"
	"time"
)

// Settings is the read-only provider configuration handed to a creator.
type Settings struct {
	Name     string
	APIKey   string
	Model    string
	BaseURL  string
	Language string
	Prompt   string
	Timeout  time.Duration
}

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Cause     error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// ErrorCode extracts the provider error code from err, or "unknown_error"
// when err does not carry one.
func ErrorCode(err error) string {
	var tErr *TranscriptionError
	if errors.As(err, &tErr) && tErr.Code != "" {
		return tErr.Code
	}
	return "unknown_error"
}
