// Package sarif exports normalized bug records as a SARIF 2.1.0 report so
// downstream tooling can consume the dataset with standard viewers.
package sarif

import (
	"fmt"
	"os"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/bugminer-dev/bugminer/internal/extractor"
)

const (
	toolName           = "Infer"
	toolInformationURI = "https://fbinfer.com"
)

// FromBugRecords builds a single-run SARIF report from bug records. Each
// distinct bug type becomes a rule; each record becomes a result located at
// its bug line range.
func FromBugRecords(records []extractor.BugRecord) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolInformationURI)
	seenRules := make(map[string]bool)

	for _, record := range records {
		if !seenRules[record.BugType] {
			run.AddRule(record.BugType).
				WithDescription(record.BugType).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: toSarifLevel(record.Severity),
				})
			seenRules[record.BugType] = true
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(record.File)).
				WithRegion(sarif.NewRegion().
					WithStartLine(record.BugStartLine).
					WithEndLine(record.BugEndLine)),
		)

		result := sarif.NewRuleResult(record.BugType).
			WithMessage(sarif.NewTextMessage(record.Description)).
			WithLevel(toSarifLevel(record.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	report.AddRun(run)

	return report, nil
}

// WriteReport writes the records as a pretty-printed SARIF file.
func WriteReport(path string, records []extractor.BugRecord) error {
	report, err := FromBugRecords(records)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := report.PrettyWrite(file); err != nil {
		return fmt.Errorf("error serializing SARIF report: %w", err)
	}
	return nil
}

func toSarifLevel(severity string) string {
	switch strings.ToUpper(severity) {
	case "ERROR", "HIGH", "CRITICAL":
		return "error"
	case "WARNING", "MEDIUM":
		return "warning"
	default:
		return "note"
	}
}
