// Package config holds all errlens configuration, read from a single
// .errlens/config.json file with environment-variable overrides. A missing
// or malformed config never fails the pipeline; defaults apply instead.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Provider names for the explanation service backend.
const (
	ProviderOpenAI = "openai" // any OpenAI-compatible chat endpoint
	ProviderGemini = "gemini"
)

// LoggingConfig controls the categorized debug logs under .errlens/logs/.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// Config is the single source of truth for errlens settings.
type Config struct {
	// Explanation service selection
	Provider     string `json:"provider,omitempty"`       // openai (default) or gemini
	APIKey       string `json:"api_key,omitempty"`        // key for the selected provider
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini-specific key
	BaseURL      string `json:"base_url,omitempty"`       // endpoint override
	Model        string `json:"model,omitempty"`          // model selector forwarded as-is

	// Prompt rendering
	Template    string `json:"template,omitempty"`     // default, detailed, or quick
	TemplateDir string `json:"template_dir,omitempty"` // on-disk override for embedded templates

	// Debug logging
	Logging LoggingConfig `json:"logging"`
}

// DefaultConfigPath returns the default path to .errlens/config.json
// relative to the working directory.
func DefaultConfigPath() string {
	return filepath.Join(".errlens", "config.json")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    "default",
		Template: "default",
	}
}

// Load reads configuration from path (or the default path when empty),
// applies environment overrides, and fills in defaults. A missing file is
// not an error; a malformed file is, so a typo does not silently revert
// the user to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults + env only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ERRLENS_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("ERRLENS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.GeminiAPIKey == "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("ERRLENS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("ERRLENS_MODEL"); v != "" {
		c.Model = v
	}
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = "default"
	}
	if c.Template == "" {
		c.Template = "default"
	}
}

// ActiveAPIKey returns the key for the selected provider.
func (c *Config) ActiveAPIKey() string {
	if c.Provider == ProviderGemini && c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.APIKey
}
