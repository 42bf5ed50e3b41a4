package diagnostic

import (
	"regexp"
	"strings"
)

// MaxTraceFrames caps the number of frames kept in a formatted trace.
// Deeper traces add noise without diagnostic value.
const MaxTraceFrames = 20

// internalFramePatterns identifies stack frames to filter out: interpreter
// and runtime internals that sit between the harness and the target code.
var internalFramePatterns = []string{
	"runtime/panic.go",
	"runtime/asm_",
	"runtime.gopanic",
	"runtime.goPanicIndex",
	"github.com/traefik/yaegi/",
	"errlens/internal/",
	"testing/testing.go",
}

// filePosRe matches a "path/file.go:123" location inside a trace line.
var filePosRe = regexp.MustCompile(`([\w@./\\-]+\.go):(\d+)`)

// srcPosRe matches a yaegi "line:col:" position at the start of a message.
var srcPosRe = regexp.MustCompile(`(?m)^(\d+):\d+:`)

// FormatTrace converts a raw goroutine stack dump (as produced by
// runtime/debug.Stack or carried on an interpreter panic) into the trace
// text stored on a Record: interpreter-internal frames removed, frames
// reordered oldest first, capped at MaxTraceFrames.
func FormatTrace(stack []byte) string {
	lines := strings.Split(strings.TrimRight(string(stack), "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	var header string
	if strings.HasPrefix(lines[0], "goroutine ") {
		header = lines[0]
		lines = lines[1:]
	}

	// Frames come in pairs: a function line followed by an indented
	// file:line line. Walk pairwise, dropping internal frames.
	type frame struct{ fn, loc string }
	var frames, all []frame
	for i := 0; i+1 < len(lines); i += 2 {
		fn := strings.TrimSpace(lines[i])
		loc := strings.TrimSpace(lines[i+1])
		all = append(all, frame{fn: fn, loc: loc})
		if isInternalFrame(fn) || isInternalFrame(loc) {
			continue
		}
		frames = append(frames, frame{fn: fn, loc: loc})
	}

	// An interpreted panic unwinds almost entirely through interpreter
	// frames; if filtering stripped everything, keep the raw frames.
	if len(frames) == 0 {
		frames = all
	}

	if len(frames) > MaxTraceFrames {
		frames = frames[:MaxTraceFrames]
	}

	// Go stacks are innermost first; the explanation prompt wants oldest
	// frame first, matching how a reader follows the program.
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n")
	}
	for i := len(frames) - 1; i >= 0; i-- {
		b.WriteString(frames[i].fn)
		b.WriteString("\n\t")
		b.WriteString(frames[i].loc)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func isInternalFrame(line string) bool {
	for _, p := range internalFramePatterns {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

// locate extracts a file path and line number from a fault message or its
// trace. Both are returned empty when no location is present.
func locate(message, trace string) (file, line string) {
	// Yaegi compile errors lead with "line:col:" and have no file path.
	if m := srcPosRe.FindStringSubmatch(message); m != nil {
		return "", m[1]
	}
	for _, text := range []string{message, trace} {
		if m := filePosRe.FindStringSubmatch(text); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}
