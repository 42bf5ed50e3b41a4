package render

import (
	"fmt"

	"errlens/internal/diagnostic"
)

// DefaultSystemInstruction is the system prompt used when no template
// resource is available.
const DefaultSystemInstruction = "You are an expert debugger and mentor. Explain errors in clear, simple language following the exact format requested."

// FixedFormatter is the guaranteed fallback: a fixed-format prompt built
// with no external resources. Its section headers and the five-item
// request list are part of the rendering contract and must not change.
type FixedFormatter struct{}

// Format renders the fixed layout. The selector is accepted for interface
// compatibility and ignored; there is only one fixed layout. It never
// fails.
func (FixedFormatter) Format(rec diagnostic.Record, _ string) (Prompt, error) {
	user := fmt.Sprintf(`You are an expert Go debugger. Analyze this error:

SOURCE CODE:
%s

ERROR INFORMATION:
Type: %s
Message: %s

TRACEBACK:
%s

Provide a clear explanation covering:
1. What happened
2. Where it occurs
3. Why it occurs
4. How to fix it
5. Best practices to avoid this

Be direct and educational.
`, rec.SourceCode, rec.FaultKind, rec.FaultMessage, rec.TraceText)

	return Prompt{
		SystemInstruction: DefaultSystemInstruction,
		UserPrompt:        user,
	}, nil
}
