// Package infer models the artifacts of the Infer static analyzer: the
// capture output directory and the structured findings report it emits.
package infer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known analyzer artifact names, relative to a project root.
const (
	OutDirName       = "infer-out"
	ReportFileName   = "report.json"
	RunStateFileName = ".infer_runstate.json"
	GlobalTenvName   = ".global.tenv"
)

// TraceItem is one step of a finding's bug trace.
type TraceItem struct {
	Level        int    `json:"level,omitempty"`
	Filename     string `json:"filename,omitempty"`
	LineNumber   int    `json:"line_number"`
	ColumnNumber int    `json:"column_number,omitempty"`
	Description  string `json:"description"`
}

// Finding is one raw issue reported by the analyzer for a project. File is
// relative to the project root.
type Finding struct {
	BugType   string      `json:"bug_type"`
	Qualifier string      `json:"qualifier"`
	Severity  string      `json:"severity,omitempty"`
	Line      int         `json:"line"`
	Column    int         `json:"column,omitempty"`
	Procedure string      `json:"procedure"`
	File      string      `json:"file"`
	BugTrace  []TraceItem `json:"bug_trace,omitempty"`
}

// OutDir returns the capture output directory for a project root.
func OutDir(projectRoot string) string {
	return filepath.Join(projectRoot, OutDirName)
}

// ReportPath returns the findings report path for a project root.
func ReportPath(projectRoot string) string {
	return filepath.Join(projectRoot, OutDirName, ReportFileName)
}

// LoadReport reads and decodes a findings report. The report is a JSON array
// of findings; any other shape is an error.
func LoadReport(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}

	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("failed to decode report %q: %w", path, err)
	}
	return findings, nil
}
