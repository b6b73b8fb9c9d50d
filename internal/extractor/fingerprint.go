package extractor

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// snippetHash fingerprints the bug's line range inside the method body so
// records of the same defect can be matched across re-runs even when line
// numbers drift. Lines are 1-based and relative to the whole file; the method
// body starts at methodStartLine. Invalid ranges yield an empty hash.
func snippetHash(methodBody string, methodStartLine, bugStartLine, bugEndLine int) string {
	if methodBody == "" || bugStartLine < methodStartLine || bugEndLine < bugStartLine {
		return ""
	}

	lines := strings.Split(methodBody, "\n")
	start := bugStartLine - methodStartLine
	end := bugEndLine - methodStartLine
	if start >= len(lines) {
		return ""
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}

	snippet := strings.Join(lines[start:end+1], "\n")
	sum := sha256.Sum256([]byte(snippet))
	return fmt.Sprintf("%x", sum[:])
}
