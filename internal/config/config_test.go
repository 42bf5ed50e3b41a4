package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ERRLENS_PROVIDER", "ERRLENS_API_KEY", "OPENAI_API_KEY",
		"GEMINI_API_KEY", "ERRLENS_BASE_URL", "ERRLENS_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "default" || cfg.Template != "default" {
		t.Errorf("defaults not applied: model=%q template=%q", cfg.Model, cfg.Template)
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"provider": "gemini",
		"gemini_api_key": "g-key",
		"model": "gemini-2.5-flash",
		"template": "detailed",
		"logging": {"debug_mode": true, "categories": {"api": true}}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Template != "detailed" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if !cfg.Logging.DebugMode || !cfg.Logging.Categories["api"] {
		t.Errorf("logging section not loaded: %+v", cfg.Logging)
	}
	if cfg.ActiveAPIKey() != "g-key" {
		t.Errorf("ActiveAPIKey = %q", cfg.ActiveAPIKey())
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"provider": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config should fail loudly, not revert to defaults")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"model": "from-file", "api_key": "file-key"}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ERRLENS_MODEL", "from-env")
	t.Setenv("ERRLENS_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model = %q, env should win", cfg.Model)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, env should win", cfg.APIKey)
	}
}

func TestLoad_FallbackProviderKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "oa-key" {
		t.Errorf("OPENAI_API_KEY fallback not applied: %q", cfg.APIKey)
	}

	// Explicit key beats the provider-native variable.
	t.Setenv("ERRLENS_API_KEY", "explicit")
	cfg, err = Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "explicit" {
		t.Errorf("APIKey = %q, ERRLENS_API_KEY should win", cfg.APIKey)
	}
}

func TestActiveAPIKey_ProviderSelection(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, APIKey: "generic", GeminiAPIKey: "gemini"}
	if got := cfg.ActiveAPIKey(); got != "gemini" {
		t.Errorf("ActiveAPIKey = %q", got)
	}

	cfg.GeminiAPIKey = ""
	if got := cfg.ActiveAPIKey(); got != "generic" {
		t.Errorf("ActiveAPIKey fallback = %q", got)
	}

	cfg.Provider = ProviderOpenAI
	cfg.GeminiAPIKey = "gemini"
	if got := cfg.ActiveAPIKey(); got != "generic" {
		t.Errorf("ActiveAPIKey = %q, gemini key must not leak to openai", got)
	}
}
