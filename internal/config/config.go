package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"neon-transcriber/internal/app/api/provider"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Upload   UploadConfig   `yaml:"upload"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              string        `yaml:"port" validate:"required,numeric,max=5"`
	Environment       string        `yaml:"environment" validate:"oneof=development production test"`
	ReadTimeout       time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout      time.Duration `yaml:"write_timeout" validate:"gte=0"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MultipartMemoryMB int64         `yaml:"multipart_memory_mb" validate:"gt=0"`
}

// ProviderConfig contains speech-to-text provider configuration
type ProviderConfig struct {
	Name     string        `yaml:"name" validate:"required,oneof=openai gemini"`
	APIKey   string        `yaml:"api_key" validate:"required"`
	Model    string        `yaml:"model" validate:"required"`
	BaseURL  string        `yaml:"base_url" validate:"omitempty,url"`
	Language string        `yaml:"language" validate:"omitempty,len=2"`
	Prompt   string        `yaml:"prompt"`
	Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
}

// UploadConfig contains transient upload storage configuration
type UploadConfig struct {
	SpoolDir string `yaml:"spool_dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	Output string `yaml:"output"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultHTTPPort,
			Environment:       DefaultEnvironment,
			ReadTimeout:       DefaultReadTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
			MultipartMemoryMB: DefaultMultipartMemoryMB,
		},
		Provider: ProviderConfig{
			Name: DefaultProvider,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
	}
}

// Load reads the configuration file at path over the defaults, applies
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	ApplyEnv(cfg)
	cfg.applyProviderDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ResolvePath returns explicit when set, otherwise DefaultConfigPath when
// that file exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}
	return ""
}

// applyProviderDefaults fills in the provider's default model. A model that
// is another provider's default is replaced too, so switching provider
// through the environment does not carry the old model along.
func (c *Config) applyProviderDefaults() {
	if c.Provider.Model == "" || isForeignDefaultModel(c.Provider.Name, c.Provider.Model) {
		c.Provider.Model = defaultModels[c.Provider.Name]
	}
}

func isForeignDefaultModel(name, model string) bool {
	for other, m := range defaultModels {
		if other != name && m == model {
			return true
		}
	}
	return false
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// MultipartMemory returns the in-memory threshold for multipart parsing in bytes.
func (s ServerConfig) MultipartMemory() int64 {
	return s.MultipartMemoryMB << 20
}

// Settings converts the provider section into factory settings.
func (p ProviderConfig) Settings() provider.Settings {
	return provider.Settings{
		Name:     p.Name,
		APIKey:   p.APIKey,
		Model:    p.Model,
		BaseURL:  p.BaseURL,
		Language: p.Language,
		Prompt:   p.Prompt,
		Timeout:  p.Timeout,
	}
}
