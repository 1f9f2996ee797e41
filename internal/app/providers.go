package app

import (
	"context"
	"log/slog"

	"neon-transcriber/internal/app/api"
	"neon-transcriber/internal/app/api/provider"
	"neon-transcriber/internal/app/upload"
	"neon-transcriber/internal/config"
	"neon-transcriber/internal/logging"

	// Register providers with the factory
	_ "neon-transcriber/internal/app/api/gemini"
	_ "neon-transcriber/internal/app/api/openai/whisper"
)

// ProvideLogger builds the process logger. The cleanup closes a log file
// when logging.output names one.
func ProvideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

// ProvideTranscriber selects the configured speech-to-text provider.
func ProvideTranscriber(ctx context.Context, cfg *config.Config) (api.Transcriber, error) {
	return provider.New(ctx, cfg.Provider.Settings())
}

// ProvideSpooler returns the spool for upload artifacts.
func ProvideSpooler(cfg *config.Config) *upload.Spooler {
	return upload.NewSpooler(cfg.Upload.SpoolDir)
}

func provideServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}
