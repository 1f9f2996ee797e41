package whisper

import (
	"context"
	"fmt"

	"neon-transcriber/internal/app/api"
	oaiclient "neon-transcriber/internal/app/api/openai"
	"neon-transcriber/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from settings
func createOpenAIProvider(_ context.Context, settings provider.Settings) (api.Transcriber, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires 'api_key' (or OPENAI_API_KEY)")
	}

	client := oaiclient.NewClient(oaiclient.ClientConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
	})

	return NewRemoteTranscriber(client,
		WithModel(settings.Model),
		WithLanguage(settings.Language),
		WithPrompt(settings.Prompt),
	), nil
}
