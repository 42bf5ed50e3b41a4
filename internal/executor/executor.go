// Package executor runs target source in-process and reports any fault as
// structured diagnostic data. Execution uses the Yaegi interpreter rather
// than `go build` so a snippet can be evaluated without a toolchain, a
// temp directory, or a compile round trip.
//
// The Executor interface keeps the capability pluggable: a sandboxed or
// resource-limited implementation can replace YaegiExecutor without
// touching the pipeline. Sandboxing itself is out of scope here - target
// code runs with the interpreter's stdlib access and no timeout.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"errlens/internal/diagnostic"
	"errlens/internal/logging"
)

// Executor evaluates source and returns a fault, or nil when the source
// ran to completion.
type Executor interface {
	Execute(ctx context.Context, source string) *diagnostic.Fault
}

// YaegiExecutor executes Go source using the Yaegi interpreter. A fresh
// interpreter is created per call so no state leaks between runs.
type YaegiExecutor struct{}

// NewYaegiExecutor creates a Yaegi-based executor.
func NewYaegiExecutor() *YaegiExecutor {
	return &YaegiExecutor{}
}

// Execute evaluates source and captures any fault it raises. Bare snippets
// are evaluated statement-by-statement; for a full program the same Eval
// defines the main package and runs its main function.
func (e *YaegiExecutor) Execute(ctx context.Context, source string) (fault *diagnostic.Fault) {
	timer := logging.StartTimer(logging.CategoryExec, "Execute")
	defer timer.Stop()

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return &diagnostic.Fault{Err: fmt.Errorf("failed to load stdlib: %w", err)}
	}

	// The interpreter surfaces interpreted panics as errors, but guard
	// against host-level panics escaping Eval as well.
	defer func() {
		if r := recover(); r != nil {
			logging.ExecError("interpreter panic escaped eval: %v", r)
			fault = faultFromRecovered(r)
		}
	}()

	if _, err := i.EvalWithContext(ctx, source); err != nil {
		return faultFromEval(err)
	}

	logging.ExecDebug("source evaluated cleanly (%d bytes)", len(source))
	return nil
}

// faultFromEval converts an interpreter error into a Fault. Interpreted
// panics arrive wrapped with the unwound stack attached; anything else is
// a parse or type-check failure.
func faultFromEval(err error) *diagnostic.Fault {
	var p interp.Panic
	if errors.As(err, &p) {
		return &diagnostic.Fault{
			Err:   panicErr(p.Value),
			Trace: diagnostic.FormatTrace(p.Stack),
		}
	}

	// Yaegi reports runtime faults from snippet statements as plain
	// errors too; classify by message rather than stage when the text is
	// recognizably a runtime condition.
	if looksLikeRuntimeFault(err) {
		return &diagnostic.Fault{Err: err}
	}

	return &diagnostic.Fault{Err: err, Compile: true}
}

func faultFromRecovered(r interface{}) *diagnostic.Fault {
	var p interp.Panic
	if asPanic(r, &p) {
		return &diagnostic.Fault{
			Err:   panicErr(p.Value),
			Trace: diagnostic.FormatTrace(p.Stack),
		}
	}
	return &diagnostic.Fault{Err: panicErr(r)}
}

func asPanic(r interface{}, out *interp.Panic) bool {
	switch v := r.(type) {
	case interp.Panic:
		*out = v
		return true
	case *interp.Panic:
		if v != nil {
			*out = *v
			return true
		}
	case error:
		return errors.As(v, out)
	}
	return false
}

// panicErr normalizes a recovered panic value into an error.
func panicErr(v interface{}) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("%v", v)
	}
}

func looksLikeRuntimeFault(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"index out of range",
		"slice bounds out of range",
		"divide by zero",
		"nil pointer",
		"invalid memory address",
		"interface conversion",
		"assignment to entry in nil map",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
