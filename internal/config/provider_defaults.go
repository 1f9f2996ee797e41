package config

import "time"

// Default configuration constants
const (
	DefaultConfigPath = "configs/config.yaml"

	// Server defaults
	DefaultHost              = "0.0.0.0"
	DefaultHTTPPort          = "8080"
	DefaultEnvironment       = "development"
	DefaultReadTimeout       = 60 * time.Second
	DefaultWriteTimeout      = 5 * time.Minute
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMultipartMemoryMB = 32

	// Provider defaults
	DefaultProvider    = "openai"
	DefaultOpenAIModel = "whisper-1"
	DefaultGeminiModel = "gemini-2.5-flash"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stdout"
)

// defaultModels maps a provider name to the model used when none is configured.
var defaultModels = map[string]string{
	"openai": DefaultOpenAIModel,
	"gemini": DefaultGeminiModel,
}

// apiKeyEnv maps a provider name to the environment variable holding its key.
var apiKeyEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"gemini": "GEMINI_API_KEY",
}
