package shader

import (
	"fmt"
	"strings"
)

// CompileError is returned when a stage fails to compile. Source carries the
// stage text annotated with 1-based line numbers.
type CompileError struct {
	Kind   StageKind
	Log    string
	Source string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Kind, strings.TrimSpace(e.Log))
}

// LinkError is returned when the program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", strings.TrimSpace(e.Log))
}

// NumberLines prefixes every line of source with its 1-based line number.
func NumberLines(source string) string {
	lines := strings.Split(source, "\n")
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i+1, l)
	}
	return b.String()
}

// trimLog drops the NUL padding GL leaves in info logs.
func trimLog(log string) string {
	return strings.TrimRight(log, "\x00")
}
