// Package explain sends rendered prompts to an external chat-completion
// service and returns the generated explanation text.
//
// The package deliberately never surfaces a transport or service failure as
// an error: the Service converts every failure into an explanation-shaped
// string, because a broken explanation service must not crash the
// debugging flow this tool exists to support.
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"errlens/internal/logging"
	"errlens/internal/render"
)

// ServiceErrorPrefix leads every synthesized failure string returned in
// place of an explanation. Part of the external contract.
const ServiceErrorPrefix = "Error communicating with AI service"

// Named model selectors forwarded to the service as-is. The set is not
// validated locally; unknown values are the service's concern.
const (
	ModelDefault = "default"
	ModelFast    = "fast"
	ModelPro     = "pro"
)

// LLMClient defines the interface for explanation providers.
type LLMClient interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	SetModel(model string)
	GetModel() string
}

// Service wraps an LLMClient with the failure-containment contract.
type Service struct {
	client LLMClient
}

// NewService wraps a provider client.
func NewService(client LLMClient) *Service {
	return &Service{client: client}
}

// Explain sends the rendered prompt to the explanation service and returns
// the generated text. On any transport, authentication, or service-side
// failure it returns "Error communicating with AI service: <detail>"
// instead of an error. A reachable service that returns empty or blank
// text is treated the same way.
//
// An empty or "default" model selector keeps the client's configured
// model; any other selector is pushed into the client verbatim. A Gemini
// client's model name survives callers that never chose a model.
func (s *Service) Explain(ctx context.Context, prompt render.Prompt, model string) string {
	start := time.Now()
	if model != "" && model != ModelDefault {
		s.client.SetModel(model)
	}

	logging.APIDebug("Explain: model=%s system_len=%d user_len=%d",
		s.client.GetModel(), len(prompt.SystemInstruction), len(prompt.UserPrompt))

	text, err := s.client.CompleteWithSystem(ctx, prompt.SystemInstruction, prompt.UserPrompt)
	if err != nil {
		logging.APIError("Explain failed after %v: %v", time.Since(start), err)
		return fmt.Sprintf("%s: %v", ServiceErrorPrefix, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logging.APIError("Explain: service returned empty response")
		return fmt.Sprintf("%s: empty response from service", ServiceErrorPrefix)
	}

	logging.API("Explain: completed in %v response_len=%d", time.Since(start), len(text))
	return text
}
