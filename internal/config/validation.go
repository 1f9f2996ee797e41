package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate performs struct-tag validation followed by cross-field checks.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}
		return err
	}

	if err := ValidateTimeout(c.Server.ShutdownTimeout, "shutdown"); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	// Key format is only checked against the public endpoints; proxies and
	// compatible servers use their own key formats.
	if c.Provider.BaseURL == "" {
		if err := ValidateAPIKey(c.Provider.APIKey, c.Provider.Name); err != nil {
			return fmt.Errorf("provider config: %w", err)
		}
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := lo.Map(errs, func(fe validator.FieldError, _ int) string {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "oneof":
			return fmt.Sprintf("%s must be one of [%s], got '%v'", field, fe.Param(), fe.Value())
		case "numeric":
			return fmt.Sprintf("%s must be numeric, got '%v'", field, fe.Value())
		case "url":
			return fmt.Sprintf("%s must be a valid URL, got '%v'", field, fe.Value())
		case "gt", "gte":
			return fmt.Sprintf("%s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
		default:
			return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
		}
	})
	return errors.New(strings.Join(messages, "; "))
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format for the named provider
func ValidateAPIKey(apiKey string, providerName string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", providerName)
	}

	switch providerName {
	case "openai":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	case "gemini":
		if !strings.HasPrefix(apiKey, "AIza") {
			return fmt.Errorf("invalid Gemini API key format: must start with 'AIza'")
		}
		if len(apiKey) < 30 {
			return fmt.Errorf("invalid Gemini API key format: too short")
		}
	}

	return nil
}
