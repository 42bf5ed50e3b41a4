// Package capture intercepts faults escaping a block of caller code and
// produces an explanation for them.
//
// Unlike the execution harness, the adapter sees a fault only as it
// unwinds an arbitrary call stack: the source text that produced it is not
// recoverable, so records built here carry a fixed placeholder instead.
//
// The wrapper returns an Outcome rather than silently redirecting control
// flow: by default the fault is absorbed and execution resumes after the
// call, and callers that want propagation opt in with WithRepanic.
package capture

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"errlens/internal/diagnostic"
	"errlens/internal/harness"
	"errlens/internal/logging"
	"errlens/internal/ux"
)

// Outcome reports what happened inside a captured block.
type Outcome struct {
	Faulted     bool
	Explanation string
	Record      *diagnostic.Record
}

type options struct {
	repanic bool
}

// Option configures a capture scope.
type Option func(*options)

// WithRepanic re-raises the original fault after the explanation has been
// produced, for callers that want capture-and-propagate instead of
// capture-and-continue.
func WithRepanic() Option {
	return func(o *options) { o.repanic = true }
}

// Run invokes fn, intercepting any panic that escapes it. On a fault it
// builds a best-effort diagnostic record from the unwound stack, drives
// the debugger's render-and-explain pipeline, and returns the Outcome.
// Without WithRepanic the fault does not propagate; control resumes at the
// statement following the call.
func Run(ctx context.Context, dbg *harness.Debugger, fn func(), opts ...Option) (out Outcome) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		fault := &diagnostic.Fault{
			Err:   recoveredErr(r),
			Trace: diagnostic.FormatTrace(debug.Stack()),
		}
		rec := diagnostic.NewRecord("", fault)
		logging.Capture("fault intercepted: %s", rec.String())

		fmt.Fprint(dbg.Output(), ux.ErrorBanner())
		explanation := dbg.Explain(ctx, rec)
		fmt.Fprintln(dbg.Output(), ux.RenderMarkdown(explanation))

		out = Outcome{
			Faulted:     true,
			Explanation: explanation,
			Record:      &rec,
		}

		if o.repanic {
			panic(r)
		}
	}()

	fn()
	return Outcome{}
}

// recoveredErr normalizes a recovered panic value into an error.
func recoveredErr(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}
