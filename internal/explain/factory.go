package explain

import (
	"errlens/internal/config"
	"errlens/internal/logging"
)

// NewClientFromConfig builds the provider client selected by config.
// Unknown providers fall back to the OpenAI-compatible client, which is
// the shape of the default hosted explanation service.
func NewClientFromConfig(cfg *config.Config) LLMClient {
	switch cfg.Provider {
	case config.ProviderGemini:
		gc := DefaultGeminiConfig(cfg.ActiveAPIKey())
		if cfg.BaseURL != "" {
			gc.BaseURL = cfg.BaseURL
		}
		// "default" is the hosted-service selector, not a Gemini model name.
		if cfg.Model != "" && cfg.Model != "default" {
			gc.Model = cfg.Model
		}
		logging.Boot("explanation provider: gemini model=%s", gc.Model)
		return NewGeminiClientWithConfig(gc)
	default:
		cc := DefaultChatConfig(cfg.ActiveAPIKey())
		if cfg.BaseURL != "" {
			cc.BaseURL = cfg.BaseURL
		}
		if cfg.Model != "" {
			cc.Model = cfg.Model
		}
		logging.Boot("explanation provider: %s base=%s model=%s", cfg.Provider, cc.BaseURL, cc.Model)
		return NewChatClientWithConfig(cc)
	}
}
