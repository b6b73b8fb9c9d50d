package sarif

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bugminer-dev/bugminer/internal/extractor"
)

func sampleRecords() []extractor.BugRecord {
	return []extractor.BugRecord{
		{
			Project:      "jsoup",
			BugID:        "jsoup-1",
			File:         "src/main/java/org/jsoup/helper/HttpConnection.java",
			Method:       "execute",
			BugType:      "NULL_DEREFERENCE",
			Description:  "object `conn` could be null",
			Severity:     "ERROR",
			BugStartLine: 42,
			BugEndLine:   44,
		},
		{
			Project:      "jsoup",
			BugID:        "jsoup-2",
			File:         "src/main/java/org/jsoup/helper/DataUtil.java",
			Method:       "load",
			BugType:      "RESOURCE_LEAK",
			Description:  "stream is not released",
			Severity:     "WARNING",
			BugStartLine: 7,
			BugEndLine:   12,
		},
		{
			Project:      "jsoup",
			BugID:        "jsoup-3",
			File:         "src/main/java/org/jsoup/helper/HttpConnection.java",
			Method:       "header",
			BugType:      "NULL_DEREFERENCE",
			Description:  "object `val` could be null",
			Severity:     "ERROR",
			BugStartLine: 90,
			BugEndLine:   90,
		},
	}
}

func TestFromBugRecordsSingleRun(t *testing.T) {
	report, err := FromBugRecords(sampleRecords())
	require.NoError(t, err)

	require.Len(t, report.Runs, 1)
	run := report.Runs[0]
	assert.Equal(t, "Infer", run.Tool.Driver.Name)

	// One rule per distinct bug type, one result per record.
	assert.Len(t, run.Tool.Driver.Rules, 2)
	require.Len(t, run.Results, 3)

	first := run.Results[0]
	require.NotNil(t, first.RuleID)
	assert.Equal(t, "NULL_DEREFERENCE", *first.RuleID)
	require.NotNil(t, first.Level)
	assert.Equal(t, "error", *first.Level)

	require.Len(t, first.Locations, 1)
	region := first.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Equal(t, 42, *region.StartLine)
	assert.Equal(t, 44, *region.EndLine)
}

func TestFromBugRecordsSeverityMapping(t *testing.T) {
	tests := []struct {
		severity string
		want     string
	}{
		{"ERROR", "error"},
		{"HIGH", "error"},
		{"WARNING", "warning"},
		{"MEDIUM", "warning"},
		{"INFO", "note"},
		{"", "note"},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			assert.Equal(t, tt.want, toSarifLevel(tt.severity))
		})
	}
}

func TestFromBugRecordsEmpty(t *testing.T) {
	report, err := FromBugRecords(nil)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_bugs.sarif")

	require.NoError(t, WriteReport(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2.1.0"`)
	assert.Contains(t, string(data), "NULL_DEREFERENCE")
	assert.Contains(t, string(data), "HttpConnection.java")
}
