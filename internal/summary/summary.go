// Package summary aggregates per-project outcomes of a batch run into one
// persisted, timestamped artifact.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/bugminer-dev/bugminer/internal/runner"
	"github.com/bugminer-dev/bugminer/pkg/shared/files"
)

// timestampLayout names summary files, e.g. batch_summary_20250915_082846.
const timestampLayout = "20060102_150405"

// BatchSummary is the write-once record of one batch run.
type BatchSummary struct {
	RunID     string              `json:"run_id"`
	CreatedAt time.Time           `json:"created_at"`
	Outcomes  []runner.RunOutcome `json:"outcomes"`
}

// Aggregator collects outcomes and persists the summary.
type Aggregator struct {
	resultsDir string
	logger     hclog.Logger
}

// NewAggregator creates an Aggregator writing into resultsDir.
func NewAggregator(resultsDir string, logger hclog.Logger) *Aggregator {
	return &Aggregator{resultsDir: resultsDir, logger: logger}
}

// Collect wraps completed outcomes into a summary identified by a fresh run
// ID and creation timestamp.
func (a *Aggregator) Collect(outcomes []runner.RunOutcome) *BatchSummary {
	return &BatchSummary{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now(),
		Outcomes:  outcomes,
	}
}

// Save persists the summary exactly once and returns the written path. When
// the results directory is unwritable it falls back to the current working
// directory rather than losing the run.
func (a *Aggregator) Save(s *BatchSummary) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling the batch summary: %w", err)
	}

	name := fmt.Sprintf("batch_summary_%s.json", s.CreatedAt.Format(timestampLayout))

	path := filepath.Join(a.resultsDir, name)
	if err := a.write(path, data); err != nil {
		a.logger.Warn("failed to write summary to results directory, falling back to working directory",
			"path", path, "error", err)
		if fallbackErr := files.WriteJsonFile(name, data); fallbackErr != nil {
			return "", fmt.Errorf("failed to write summary to %q (%v) and to fallback %q: %w",
				path, err, name, fallbackErr)
		}
		return name, nil
	}

	a.logger.Info("batch summary saved", "path", path, "runID", s.RunID)
	return path, nil
}

func (a *Aggregator) write(path string, data []byte) error {
	if err := files.CreateFolderIfNotExists(a.resultsDir); err != nil {
		return err
	}
	return files.WriteJsonFile(path, data)
}

// PrintTally writes the human-readable success/error counts of a run.
func (a *Aggregator) PrintTally(w io.Writer, s *BatchSummary) {
	succeeded := 0
	for _, outcome := range s.Outcomes {
		if outcome.Status == runner.StatusSuccess {
			succeeded++
		}
	}

	fmt.Fprintf(w, "Projects analyzed: %d\n", len(s.Outcomes))
	fmt.Fprintf(w, "Succeeded: %d\n", succeeded)
	fmt.Fprintf(w, "Failed: %d\n", len(s.Outcomes)-succeeded)
	for _, outcome := range s.Outcomes {
		if outcome.Status != runner.StatusSuccess {
			fmt.Fprintf(w, "  %s: %s\n", outcome.Project.RootPath, outcome.Error)
		}
	}
}
