package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvHost        = "TRANSCRIBER_HOST"
	EnvPort        = "TRANSCRIBER_PORT"
	EnvEnvironment = "TRANSCRIBER_ENV"
	EnvProvider    = "TRANSCRIBER_PROVIDER"
	EnvModel       = "TRANSCRIBER_MODEL"
	EnvBaseURL     = "TRANSCRIBER_BASE_URL"
	EnvSpoolDir    = "TRANSCRIBER_SPOOL_DIR"
	EnvLogLevel    = "TRANSCRIBER_LOG_LEVEL"
	EnvLogFormat   = "TRANSCRIBER_LOG_FORMAT"
)

// envPaths are tried in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error: variables may be set system-wide.
// It returns the path that was loaded, or "".
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// GetAPIKeys retrieves API keys from environment variables
func GetAPIKeys() *APIKeys {
	return &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv(apiKeyEnv["openai"])),
		Gemini: strings.TrimSpace(os.Getenv(apiKeyEnv["gemini"])),
	}
}

// ForProvider returns the key for the named provider.
func (k *APIKeys) ForProvider(name string) string {
	switch name {
	case "openai":
		return k.OpenAI
	case "gemini":
		return k.Gemini
	default:
		return ""
	}
}

// ApplyEnv overrides cfg with any TRANSCRIBER_* variables and the
// provider's API key variable.
func ApplyEnv(cfg *Config) {
	setFromEnv(&cfg.Server.Host, EnvHost)
	setFromEnv(&cfg.Server.Port, EnvPort)
	setFromEnv(&cfg.Server.Environment, EnvEnvironment)
	setFromEnv(&cfg.Provider.Name, EnvProvider)
	setFromEnv(&cfg.Provider.Model, EnvModel)
	setFromEnv(&cfg.Provider.BaseURL, EnvBaseURL)
	setFromEnv(&cfg.Upload.SpoolDir, EnvSpoolDir)
	setFromEnv(&cfg.Logging.Level, EnvLogLevel)
	setFromEnv(&cfg.Logging.Format, EnvLogFormat)

	if key := GetAPIKeys().ForProvider(cfg.Provider.Name); key != "" {
		cfg.Provider.APIKey = key
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
