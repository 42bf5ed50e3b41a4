// Package diagnostic defines the structured snapshot of a captured fault:
// the source that produced it, the fault's kind and message, and the
// formatted stack trace. A Record is built once per fault, rendered into a
// prompt, and discarded - it is never persisted or compared across runs.
package diagnostic

import (
	"fmt"
	"strings"
)

// SourceUnavailable is the placeholder stored in a Record when the original
// source text cannot be recovered, e.g. when a fault is intercepted while
// unwinding an arbitrary call stack.
const SourceUnavailable = "Context not available - use Run() or RunFile() for full context"

// TraceUnavailable is the placeholder stored when no stack trace could be
// captured, e.g. for faults raised before any code executed.
const TraceUnavailable = "no stack trace available"

// Fault describes a failure observed while executing target source.
// Err is the underlying fault and is never nil. Trace holds the formatted
// stack at the point of the fault, oldest frame first; it may be empty when
// the fault was raised before execution started (compile errors).
type Fault struct {
	Err     error
	Trace   string
	Compile bool // true when the source failed to parse or type-check
}

// Record is the unit passed between the execution harness, the prompt
// renderer and the explanation client.
type Record struct {
	SourceCode   string
	FaultKind    string
	FaultMessage string
	TraceText    string

	// FilePath and LineNumber are set only when a location could be
	// extracted from the fault or its trace.
	FilePath   string
	LineNumber string
}

// NewRecord builds a Record from a captured fault. FaultKind and
// FaultMessage are always non-empty; SourceCode and TraceText fall back to
// placeholders when the originals are not available.
func NewRecord(source string, f *Fault) Record {
	rec := Record{
		SourceCode: source,
		FaultKind:  Classify(f),
	}

	if rec.SourceCode == "" {
		rec.SourceCode = SourceUnavailable
	}

	rec.FaultMessage = strings.TrimSpace(f.Err.Error())
	if rec.FaultMessage == "" {
		rec.FaultMessage = rec.FaultKind
	}

	rec.TraceText = strings.TrimSpace(f.Trace)
	if rec.TraceText == "" {
		// Compile-stage faults carry their position in the message only.
		if f.Compile {
			rec.TraceText = rec.FaultMessage
		} else {
			rec.TraceText = TraceUnavailable
		}
	}

	rec.FilePath, rec.LineNumber = locate(rec.FaultMessage, rec.TraceText)
	return rec
}

// String returns a short one-line description, used in status output.
func (r Record) String() string {
	return fmt.Sprintf("%s: %s", r.FaultKind, r.FaultMessage)
}
