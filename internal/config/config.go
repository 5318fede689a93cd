// Package config loads runtime configuration from the environment with an
// optional YAML file at ~/.config/tubenotes/config.yml supplying defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// PlaceholderFalKey is the value shipped in .env.example; treated as unset.
const PlaceholderFalKey = "your_fal_api_key_here"

// Config holds all configuration for tubenotes.
type Config struct {
	// Gemini API key, used for note generation and the Imagen fallback.
	// Required for any command that talks to the model.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" yaml:"gemini_api_key"`

	// fal.ai API key for fast image generation. Optional: when empty or left
	// at the example placeholder, the fal provider is skipped.
	FalAPIKey string `envconfig:"FAL_API_KEY" yaml:"fal_api_key"`

	// Supadata hosted transcript API key. Optional: when empty the hosted
	// strategy fails fast and the chain falls through to the next source.
	SupadataAPIKey string `envconfig:"SUPADATA_API_KEY" yaml:"supadata_api_key"`

	// Base URL of a running transcript proxy (tubenotes serve). Optional.
	ProxyBaseURL string `envconfig:"PROXY_BASE_URL" yaml:"proxy_base_url"`

	// Base URL of the alternative transcript API. Optional, off by default.
	AlternativeAPIURL string `envconfig:"ALTERNATIVE_API_URL" yaml:"alternative_api_url"`

	// Notes provider: "gemini" or "openai".
	NotesProvider string `envconfig:"NOTES_PROVIDER" yaml:"notes_provider"`

	// OpenAI credentials, only needed when NotesProvider is "openai".
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" yaml:"openai_api_key"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" yaml:"openai_model"`

	// Port for the transcript proxy server.
	Port string `envconfig:"PORT" yaml:"port"`

	LogLevel  string `envconfig:"LOG_LEVEL" yaml:"log_level"`
	LogPretty bool   `envconfig:"LOG_PRETTY" yaml:"log_pretty"`
}

// Load reads configuration: config.yml first (if present), then .env, then
// process environment. Environment wins over the file; built-in defaults
// fill whatever remains unset.
func Load() (*Config, error) {
	var cfg Config

	if path, err := ConfigFilePath(); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.applyDefaults()

	if cfg.FalAPIKey == PlaceholderFalKey {
		cfg.FalAPIKey = ""
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NotesProvider == "" {
		c.NotesProvider = "gemini"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4o-mini"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// RequireGemini returns an error when the Gemini key is missing. Commands
// that call the model check this up front instead of failing mid-run.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return nil
}

// HasFal reports whether the fast image provider is usable.
func (c *Config) HasFal() bool {
	return c.FalAPIKey != ""
}

// ConfigFilePath returns the location of the optional YAML config file.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tubenotes", "config.yml"), nil
}
