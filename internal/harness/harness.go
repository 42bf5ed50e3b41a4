// Package harness orchestrates the explanation pipeline: execute target
// source, capture any fault as a diagnostic record, render it into a
// prompt, and obtain an explanation from the service.
//
// No fault class handled here is fatal. Target-code faults are captured
// and explained, file-access problems are reported and swallowed, and
// service failures come back as explanation-shaped strings.
package harness

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"errlens/internal/diagnostic"
	"errlens/internal/executor"
	"errlens/internal/explain"
	"errlens/internal/logging"
	"errlens/internal/render"
	"errlens/internal/ux"
)

// Debugger wires an executor, a renderer and an explanation service into
// the run pipeline. All dependencies are injected; the zero value is not
// usable.
type Debugger struct {
	exec     executor.Executor
	renderer *render.Renderer
	service  *explain.Service

	model    string
	template string
	out      io.Writer
}

// Option configures a Debugger.
type Option func(*Debugger)

// WithModel sets the model selector forwarded to the explanation service.
func WithModel(model string) Option {
	return func(d *Debugger) { d.model = model }
}

// WithTemplate sets the prompt template selector.
func WithTemplate(template string) Option {
	return func(d *Debugger) { d.template = template }
}

// WithOutput redirects status and explanation output. Pass io.Discard for
// headless integrations; the return values carry everything the output
// stream does.
func WithOutput(w io.Writer) Option {
	return func(d *Debugger) { d.out = w }
}

// New builds a Debugger from its three collaborators.
func New(exec executor.Executor, renderer *render.Renderer, service *explain.Service, opts ...Option) *Debugger {
	d := &Debugger{
		exec:     exec,
		renderer: renderer,
		service:  service,
		model:    explain.ModelDefault,
		template: render.SelectorDefault,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes source and, if it faults, returns the explanation and true.
// Clean execution returns ("", false). Faults never propagate out of Run.
func (d *Debugger) Run(ctx context.Context, source string) (string, bool) {
	reqID := uuid.NewString()[:8]
	logging.Exec("[req:%s] executing %d bytes of source", reqID, len(source))

	fault := d.exec.Execute(ctx, source)
	if fault == nil {
		fmt.Fprintln(d.out, ux.Success("Code executed successfully - no errors detected!"))
		logging.Exec("[req:%s] clean run", reqID)
		return "", false
	}

	rec := diagnostic.NewRecord(source, fault)
	logging.Exec("[req:%s] fault captured: %s", reqID, rec.String())

	fmt.Fprint(d.out, ux.ErrorBanner())

	explanation := d.Explain(ctx, rec)
	fmt.Fprintln(d.out, ux.RenderMarkdown(explanation))
	logging.Exec("[req:%s] explanation delivered (%d bytes)", reqID, len(explanation))

	return explanation, true
}

// RunFile reads a source file and delegates to Run. A missing or
// unreadable file is reported on the output stream and yields ("", false);
// it never raises.
func (d *Debugger) RunFile(ctx context.Context, path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(d.out, ux.Notice(fmt.Sprintf("File not found: %s", path)))
		} else {
			fmt.Fprintln(d.out, ux.Notice(fmt.Sprintf("Error reading file: %v", err)))
		}
		logging.ExecError("RunFile %s: %v", path, err)
		return "", false
	}

	fmt.Fprintln(d.out, ux.Notice(fmt.Sprintf("Debugging file: %s", path)))
	return d.Run(ctx, string(data))
}

// Explain renders a record and queries the explanation service. Shared by
// Run and the automatic-capture adapter; always returns a non-empty
// string for a valid record.
func (d *Debugger) Explain(ctx context.Context, rec diagnostic.Record) string {
	prompt := d.renderer.Render(rec, d.template)
	return d.service.Explain(ctx, prompt, d.model)
}

// Output returns the writer status text goes to, so the capture adapter
// can share it.
func (d *Debugger) Output() io.Writer {
	return d.out
}
