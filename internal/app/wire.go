//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"neon-transcriber/internal/api/server"
	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/metrics"
	"neon-transcriber/internal/config"
)

// InitializeServer assembles the HTTP server from configuration.
func InitializeServer(ctx context.Context, cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(
		provideServerConfig,
		ProvideLogger,
		ProvideTranscriber,
		ProvideSpooler,
		metrics.NewMetrics,
		server.NewServer,
	)
	return nil, nil, nil
}

// InitializeTranscriber builds only the provider, for the transcribe command.
func InitializeTranscriber(ctx context.Context, cfg *config.Config) (api.Transcriber, error) {
	wire.Build(ProvideTranscriber)
	return nil, nil
}
