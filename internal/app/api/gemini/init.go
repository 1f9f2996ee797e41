package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createGeminiProvider)
}

func createGeminiProvider(ctx context.Context, settings provider.Settings) (api.Transcriber, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("gemini provider requires 'api_key' (or GEMINI_API_KEY)")
	}

	cc := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		cc.HTTPOptions.BaseURL = settings.BaseURL
	}
	if settings.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: settings.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return NewTranscriber(client, settings.Model, settings.Language, settings.Prompt), nil
}
