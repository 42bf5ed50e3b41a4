package diagnostic

import (
	"fmt"
	"runtime"
	"strings"
)

// Fault kind names surfaced to the explanation service. These follow the
// category-style naming of the runtime conditions they describe rather than
// the Go error type that reported them.
const (
	KindCompileError      = "CompileError"
	KindIndexOutOfRange   = "IndexOutOfRange"
	KindSliceBounds       = "SliceBoundsOutOfRange"
	KindDivisionByZero    = "DivisionByZero"
	KindNilPointer        = "NilPointerDereference"
	KindTypeAssertion     = "InvalidTypeAssertion"
	KindNilMapWrite       = "NilMapWrite"
	KindStackOverflow     = "StackOverflow"
	KindOutOfMemory       = "OutOfMemory"
	KindRuntimeError      = "RuntimeError"
)

// messageKinds maps substrings of runtime error messages to fault kinds.
// Checked in order; first match wins.
var messageKinds = []struct {
	substr string
	kind   string
}{
	{"index out of range", KindIndexOutOfRange},
	{"slice bounds out of range", KindSliceBounds},
	{"integer divide by zero", KindDivisionByZero},
	{"nil pointer dereference", KindNilPointer},
	{"invalid memory address", KindNilPointer},
	{"interface conversion", KindTypeAssertion},
	{"assignment to entry in nil map", KindNilMapWrite},
	{"stack overflow", KindStackOverflow},
	{"out of memory", KindOutOfMemory},
}

// Classify names the category of a captured fault.
func Classify(f *Fault) string {
	if f.Compile {
		return KindCompileError
	}

	msg := f.Err.Error()
	for _, mk := range messageKinds {
		if strings.Contains(msg, mk.substr) {
			return mk.kind
		}
	}

	if _, ok := f.Err.(runtime.Error); ok {
		return KindRuntimeError
	}
	return typeName(f.Err)
}

// typeName derives a fault kind from the concrete error type, e.g.
// *fs.PathError -> "PathError". Plain errors.New values collapse to "Error".
func typeName(err error) string {
	name := fmt.Sprintf("%T", err)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "errorString", "wrapError", "fundamental":
		return "Error"
	}
	if name == "" {
		return KindRuntimeError
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
