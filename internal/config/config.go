package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/genaichat/internal/logger"
)

const envPrefix = "GENAICHAT_"

// deploymentEnv maps the environment variable names used by existing
// deployments of the chat app onto config keys.
var deploymentEnv = map[string]string{
	"GOOGLE_CLOUD_PROJECT":      "project",
	"GOOGLE_CLOUD_LOCATION":     "location",
	"GOOGLE_GENAI_USE_VERTEXAI": "use_vertexai",
	"MODEL_NAME":                "model",
	"LOGGING_LEVEL":             "log_level",
	"PORT":                      "port",
}

// LoadDotEnv loads environment variables from the given .env files. Missing
// files are skipped; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from the given YAML file, then overlays the
// deployment environment variables and finally GENAICHAT_* overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()
	// Slices decode element-wise over existing values, and the model default
	// depends on the provider, so both are filled in after unmarshalling.
	cfg.SafetySettings = nil
	cfg.Model = ""

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return deploymentEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading deployment env: %w", err)
	}

	// GENAICHAT_USE_VERTEXAI -> use_vertexai, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.SafetySettings == nil {
		cfg.SafetySettings = DefaultSafetySettings()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGoogle:    true,
	ProviderOpenAI:    true,
	ProviderAnthropic: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of google, openai, anthropic", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.VertexAI() {
		if c.Project == "" {
			return fmt.Errorf("project is required when use_vertexai is set")
		}
		if c.Location == "" {
			return fmt.Errorf("location is required when use_vertexai is set")
		}
	}

	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must be non-negative")
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature %g out of range [0, 2]", *c.Temperature)
	}

	for i, s := range c.SafetySettings {
		if s.Category == "" || s.Threshold == "" {
			return fmt.Errorf("safety_settings[%d]: category and threshold are required", i)
		}
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log_format %q: must be json or text", c.LogFormat)
	}

	return nil
}

// VertexAI reports whether generation goes through Vertex AI rather than
// the Gemini Developer API.
func (c *Config) VertexAI() bool {
	return c.Provider == ProviderGoogle && c.UseVertexAI
}

// SystemInstruction returns the contents of the system instruction file.
// An unset path yields an empty instruction; a missing file is an error
// wrapping os.ErrNotExist.
func (c *Config) SystemInstruction() (string, error) {
	if c.SystemInstructionFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.SystemInstructionFile)
	if err != nil {
		return "", fmt.Errorf("reading system instruction: %w", err)
	}
	return string(data), nil
}

// APIKeyEnvVar returns the environment variable holding the API key for the
// given provider. Vertex AI uses Application Default Credentials instead.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
