// Package render turns a diagnostic record into the two strings sent to the
// explanation service: a system instruction and a user prompt.
//
// Rendering is a two-tier strategy. The primary formatter executes named
// text/template resources; the fixed formatter produces a hard-coded layout
// that needs no resources at all. The Renderer degrades to the fixed
// formatter silently whenever the primary is unavailable or fails, so
// rendering never returns an error to its caller.
package render

import (
	"errlens/internal/diagnostic"
	"errlens/internal/logging"
)

// Prompt is the rendered output: a system instruction and a user prompt.
type Prompt struct {
	SystemInstruction string
	UserPrompt        string
}

// Selector names for the cosmetic template variants.
const (
	SelectorDefault  = "default"
	SelectorDetailed = "detailed"
	SelectorQuick    = "quick"
)

// Formatter renders a record under a template selector.
type Formatter interface {
	Format(rec diagnostic.Record, selector string) (Prompt, error)
}

// Renderer drives the two-tier formatting strategy. Construct once and
// reuse; it holds no per-call state.
type Renderer struct {
	primary  Formatter
	fallback *FixedFormatter
}

// NewRenderer builds a Renderer around an optional primary formatter.
// Pass nil to run fallback-only (the template backend failed to load, or a
// test wants the fixed layout).
func NewRenderer(primary Formatter) *Renderer {
	return &Renderer{
		primary:  primary,
		fallback: &FixedFormatter{},
	}
}

// NewDefaultRenderer builds a Renderer backed by the embedded templates.
// If the embedded resources fail to load the Renderer still works,
// fallback-only.
func NewDefaultRenderer() *Renderer {
	tf, err := NewTemplateFormatter("")
	if err != nil {
		logging.RenderWarn("template backend unavailable, using fixed formatting: %v", err)
		return NewRenderer(nil)
	}
	return NewRenderer(tf)
}

// Render produces the prompt for a record. Template failures of any kind
// degrade to the fixed layout; the fallback is the recovery mechanism, not
// an error to report.
func (r *Renderer) Render(rec diagnostic.Record, selector string) Prompt {
	if r.primary != nil {
		p, err := r.primary.Format(rec, selector)
		if err == nil {
			return p
		}
		logging.RenderWarn("template %q failed, falling back: %v", selector, err)
	}
	p, _ := r.fallback.Format(rec, selector)
	return p
}
