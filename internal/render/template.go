package render

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"errlens/internal/diagnostic"
	"errlens/internal/logging"
)

// manifest maps template selectors to files inside the template directory.
type manifest struct {
	Templates    map[string]string `yaml:"templates"`
	SystemPrompt string            `yaml:"system_prompt"`
}

// TemplateFormatter renders prompts from named text/template resources.
// Templates and the system prompt are resolved once at construction; a
// formatter is read-only afterwards and safe to share.
type TemplateFormatter struct {
	templates    map[string]*template.Template
	systemPrompt string
}

// NewTemplateFormatter loads templates from dir, or from the embedded
// resources when dir is empty. The manifest names one template per
// selector plus a plain-text system prompt. A missing or malformed
// resource set returns an error; the caller is expected to degrade to the
// fixed formatter rather than fail.
func NewTemplateFormatter(dir string) (*TemplateFormatter, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates unavailable: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return newTemplateFormatterFS(fsys)
}

func newTemplateFormatterFS(fsys fs.FS) (*TemplateFormatter, error) {
	data, err := fs.ReadFile(fsys, "manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read template manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse template manifest: %w", err)
	}
	if len(m.Templates) == 0 {
		return nil, fmt.Errorf("template manifest names no templates")
	}
	if _, ok := m.Templates[SelectorDefault]; !ok {
		return nil, fmt.Errorf("template manifest missing %q entry", SelectorDefault)
	}

	tf := &TemplateFormatter{templates: make(map[string]*template.Template)}

	for selector, file := range m.Templates {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		t, err := template.New(selector).Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		tf.templates[selector] = t
	}

	if m.SystemPrompt != "" {
		src, err := fs.ReadFile(fsys, m.SystemPrompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read system prompt: %w", err)
		}
		tf.systemPrompt = strings.TrimSpace(string(src))
	}
	if tf.systemPrompt == "" {
		tf.systemPrompt = DefaultSystemInstruction
	}

	logging.RenderDebug("template backend loaded: %d templates", len(tf.templates))
	return tf, nil
}

// Format executes the selected template over the record. An unknown
// selector resolves to the default template.
func (tf *TemplateFormatter) Format(rec diagnostic.Record, selector string) (Prompt, error) {
	t, ok := tf.templates[selector]
	if !ok {
		t = tf.templates[SelectorDefault]
	}

	var b strings.Builder
	if err := t.Execute(&b, rec); err != nil {
		return Prompt{}, fmt.Errorf("template execution failed: %w", err)
	}

	return Prompt{
		SystemInstruction: tf.systemPrompt,
		UserPrompt:        b.String(),
	}, nil
}
