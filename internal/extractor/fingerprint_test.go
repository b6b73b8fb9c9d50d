package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippetHashStableAcrossLineDrift(t *testing.T) {
	body := "void bar(int x) {\n    Object y = make(x);\n    y.use();\n}"

	// The same method body located at different absolute offsets must
	// fingerprint identically when the bug range covers the same lines.
	atLine40 := snippetHash(body, 40, 41, 42)
	atLine90 := snippetHash(body, 90, 91, 92)

	assert.NotEmpty(t, atLine40)
	assert.Equal(t, atLine40, atLine90)
}

func TestSnippetHashDistinguishesRanges(t *testing.T) {
	body := "void bar(int x) {\n    Object y = make(x);\n    y.use();\n}"

	assert.NotEqual(t, snippetHash(body, 40, 41, 41), snippetHash(body, 40, 41, 42))
}

func TestSnippetHashInvalidRanges(t *testing.T) {
	body := "void bar() {\n}"

	assert.Empty(t, snippetHash("", 1, 1, 1))
	assert.Empty(t, snippetHash(body, 40, 39, 41), "bug before method start")
	assert.Empty(t, snippetHash(body, 40, 42, 41), "end before start")
	assert.Empty(t, snippetHash(body, 40, 99, 99), "start past method body")
}

func TestSnippetHashClampsEndToBody(t *testing.T) {
	body := "void bar() {\n    work();\n}"

	assert.Equal(t, snippetHash(body, 40, 41, 42), snippetHash(body, 40, 41, 500))
}
