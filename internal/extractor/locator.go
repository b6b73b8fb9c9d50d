package extractor

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Locator failure modes, distinguished so callers can measure the heuristic's
// error rate instead of silently tolerating it.
var (
	ErrMethodNotFound    = errors.New("method not found")
	ErrLineOutsideMethod = errors.New("bug line outside resolved method range")
)

// MethodInfo describes the method enclosing a finding. Lines are 1-based and
// inclusive.
type MethodInfo struct {
	Body      string
	StartLine int
	EndLine   int
}

// LocateMethod finds the method enclosing line in the given source file by a
// textual heuristic: scan backward from line to the nearest preceding line
// containing the method's simple name, then scan forward balancing braces
// until the running count returns to zero on a line after the declaration.
//
// This is deliberately not a parser. Overloaded same-named declarations and
// brace characters inside comments or string literals are known sources of
// misdetection; callers must treat a NotFound result as a skippable finding,
// not a failure.
func LocateMethod(path, methodName string, line int) (MethodInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MethodInfo{}, fmt.Errorf("failed to read source file %q: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 {
		return MethodInfo{}, ErrMethodNotFound
	}

	start := clamp(line, 1, len(lines))
	found := false
	for i := start; i >= 1; i-- {
		if strings.Contains(lines[i-1], methodName) {
			start = i
			found = true
			break
		}
	}
	if !found {
		return MethodInfo{}, ErrMethodNotFound
	}

	balance := 0
	end := 0
	for i := start; i <= len(lines); i++ {
		balance += strings.Count(lines[i-1], "{") - strings.Count(lines[i-1], "}")
		// A same-line {} on the declaration must not terminate the
		// method immediately; only lines after it qualify as an end.
		if balance == 0 && i > start {
			end = i
			break
		}
	}
	if end == 0 {
		return MethodInfo{}, fmt.Errorf("%w: braces never rebalance after line %d", ErrMethodNotFound, start)
	}

	if line < start || line > end {
		return MethodInfo{}, fmt.Errorf("%w: line %d not in [%d, %d]", ErrLineOutsideMethod, line, start, end)
	}

	return MethodInfo{
		Body:      strings.Join(lines[start-1:end], "\n"),
		StartLine: start,
		EndLine:   end,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
