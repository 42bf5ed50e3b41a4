package render

import "embed"

// embeddedTemplates bakes the built-in prompt templates into the binary so
// the template backend has no filesystem dependency by default. An on-disk
// template directory can still override them via config.
//
//go:embed templates
var embeddedTemplates embed.FS
