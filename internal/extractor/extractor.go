// Package extractor normalizes raw analyzer findings into method-scoped bug
// records suitable for dataset generation.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/bugminer-dev/bugminer/internal/infer"
)

// BugRecord is a normalized, method-scoped representation of a finding with
// resolved line ranges and source text. BugID is unique within a project via
// sequential assignment; `{project}-{sequence}` is globally unique.
type BugRecord struct {
	Project         string            `json:"project"`
	BugID           string            `json:"bug_id"`
	File            string            `json:"file"`
	Method          string            `json:"method"`
	BugType         string            `json:"bug_type"`
	Description     string            `json:"description"`
	Severity        string            `json:"severity"`
	LineNumber      int               `json:"line_number"`
	MethodStartLine int               `json:"method_start_line"`
	MethodEndLine   int               `json:"method_end_line"`
	BugStartLine    int               `json:"bug_start_line"`
	BugEndLine      int               `json:"bug_end_line"`
	SnippetHash     string            `json:"snippet_hash,omitempty"`
	MethodCode      string            `json:"method_code"`
	BugTrace        []infer.TraceItem `json:"bug_trace"`
}

// Extractor converts findings of one project into bug records.
type Extractor struct {
	logger hclog.Logger
}

// New creates an Extractor.
func New(logger hclog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract produces one record per locatable finding. Findings in test code
// are out of scope for the dataset and skipped outright; findings the method
// locator cannot place are logged and skipped without aborting the rest of
// the project.
func (e *Extractor) Extract(projectRoot string, findings []infer.Finding) []BugRecord {
	projectName := filepath.Base(projectRoot)

	var records []BugRecord
	for _, finding := range findings {
		if strings.Contains(strings.ToLower(finding.File), "test") {
			continue
		}

		methodName := MethodNameFromProcedure(finding.Procedure)
		if methodName == "" {
			e.logger.Warn("finding has no usable procedure name, skipping",
				"file", finding.File, "line", finding.Line)
			continue
		}

		info, err := LocateMethod(filepath.Join(projectRoot, finding.File), methodName, finding.Line)
		if err != nil {
			e.logger.Warn("could not locate enclosing method, skipping finding",
				"file", finding.File, "line", finding.Line, "method", methodName, "error", err)
			continue
		}

		endLine := bugEndLine(finding, info.EndLine)
		records = append(records, BugRecord{
			Project:         projectName,
			BugID:           fmt.Sprintf("%s-%d", projectName, len(records)+1),
			File:            finding.File,
			Method:          methodName,
			BugType:         finding.BugType,
			Description:     finding.Qualifier,
			Severity:        finding.Severity,
			LineNumber:      finding.Line,
			MethodStartLine: info.StartLine,
			MethodEndLine:   info.EndLine,
			BugStartLine:    finding.Line,
			BugEndLine:      endLine,
			SnippetHash:     snippetHash(info.Body, info.StartLine, finding.Line, endLine),
			MethodCode:      info.Body,
			BugTrace:        finding.BugTrace,
		})
	}
	return records
}

// MethodNameFromProcedure extracts the simple method name from a qualified
// procedure string, e.g.
// "org.jsoup.helper.CookieUtil.parseCookie(java.lang.String):void" yields
// "parseCookie".
func MethodNameFromProcedure(procedure string) string {
	if procedure == "" {
		return ""
	}
	name := procedure
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// bugEndLine is the greatest trace line that is still inside the resolved
// method; an empty trace or one entirely past the method bound falls back to
// the finding's own line.
func bugEndLine(finding infer.Finding, methodEndLine int) int {
	end := finding.Line
	for _, item := range finding.BugTrace {
		if item.LineNumber <= methodEndLine && item.LineNumber > end {
			end = item.LineNumber
		}
	}
	return end
}
