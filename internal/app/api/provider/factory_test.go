package provider_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"

	// Import providers to register them (same as main.go)
	_ "neon-transcriber/internal/app/api/gemini"
	_ "neon-transcriber/internal/app/api/openai/whisper"
)

func TestListRegisteredProviders(t *testing.T) {
	providers := provider.ListRegisteredProviders()

	assert.Contains(t, providers, "openai")
	assert.Contains(t, providers, "gemini")
	assert.IsIncreasing(t, providers)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		settings      provider.Settings
		expectError   bool
		errorContains string
	}{
		{
			name:     "openai provider",
			settings: provider.Settings{Name: "openai", APIKey: "sk-test-1234567890abcdef", Model: "whisper-1"},
		},
		{
			name:          "openai without api key",
			settings:      provider.Settings{Name: "openai"},
			expectError:   true,
			errorContains: "api_key",
		},
		{
			name:          "unknown provider",
			settings:      provider.Settings{Name: "whisper_cpp", APIKey: "x"},
			expectError:   true,
			errorContains: "not registered",
		},
		{
			name:          "empty name",
			settings:      provider.Settings{},
			expectError:   true,
			errorContains: "provider name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber, err := provider.New(context.Background(), tt.settings)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, transcriber)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, transcriber)
		})
	}
}

func TestRegisterProvider(t *testing.T) {
	provider.RegisterProvider("echo_test", func(ctx context.Context, settings provider.Settings) (api.Transcriber, error) {
		return api.TranscriberFunc(func(ctx context.Context, audio api.AudioInput) (string, error) {
			return settings.Model + ":" + audio.Filename, nil
		}), nil
	})

	transcriber, err := provider.New(context.Background(), provider.Settings{Name: "echo_test", Model: "m1"})
	require.NoError(t, err)

	text, err := transcriber.Transcribe(context.Background(), api.AudioInput{Filename: "a.wav"})
	require.NoError(t, err)
	assert.Equal(t, "m1:a.wav", text)
}

func TestErrorCode(t *testing.T) {
	tErr := &provider.TranscriptionError{Code: "rate_limit_exceeded", Message: "slow down"}

	assert.Equal(t, "rate_limit_exceeded", provider.ErrorCode(tErr))
	assert.Equal(t, "rate_limit_exceeded", provider.ErrorCode(fmt.Errorf("wrapped: %w", tErr)))
	assert.Equal(t, "unknown_error", provider.ErrorCode(errors.New("plain")))
}
