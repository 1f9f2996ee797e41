package provider

import (
	"context"
	"fmt"

	"neon-transcriber/internal/app/api"
)

// New creates the transcriber named by settings.Name. The provider package
// must have been linked in (blank import) for its name to resolve.
func New(ctx context.Context, settings Settings) (api.Transcriber, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("provider name is required")
	}

	creator, err := GetProviderCreator(settings.Name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, ListRegisteredProviders())
	}

	transcriber, err := creator(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", settings.Name, err)
	}
	return transcriber, nil
}
