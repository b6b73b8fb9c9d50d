package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bugminer-dev/bugminer/internal/extractor"
	"github.com/bugminer-dev/bugminer/internal/infer"
	"github.com/bugminer-dev/bugminer/internal/sarif"
	"github.com/bugminer-dev/bugminer/pkg/shared/config"
	"github.com/bugminer-dev/bugminer/pkg/shared/files"
	"github.com/bugminer-dev/bugminer/pkg/shared/logger"
)

// RunOptionsExtract holds the arguments for the extract command.
type RunOptionsExtract struct {
	Format string
}

var (
	AppConfig           *config.Config
	extractOptions      RunOptionsExtract
	exampleExtractUsage = `  # Converting raw analyzer reports of every analyzed project into bug records
  bugminer extract /path/to/projects /path/to/bug-reports

  # Additionally emitting a SARIF report next to the combined records
  bugminer extract --format sarif /path/to/projects /path/to/bug-reports`
)

// ExtractCmd represents the extract command.
var ExtractCmd = &cobra.Command{
	Use:                   "extract [--format FORMAT] PROJECTS_DIR OUTPUT_DIR",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExtractUsage,
	Short:                 "Converts raw per-project analyzer reports into normalized, method-scoped bug records",
	RunE:                  runExtractCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runExtractCommand executes the extract command.
func runExtractCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-extract")

	projectsDir, outputDir, err := validateExtractArgs(&extractOptions, args)
	if err != nil {
		log.Error("invalid extract arguments", "error", err)
		return err
	}

	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return fmt.Errorf("failed to read projects directory %q: %w", projectsDir, err)
	}

	ext := extractor.New(log)
	var allRecords []extractor.BugRecord
	processed := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		projectRoot := filepath.Join(projectsDir, entry.Name())

		reportPath := infer.ReportPath(projectRoot)
		if !files.Exists(reportPath) {
			log.Warn("no analyzer report found, skipping project", "project", projectRoot)
			continue
		}

		findings, err := infer.LoadReport(reportPath)
		if err != nil {
			log.Warn("failed to load analyzer report, skipping project", "project", projectRoot, "error", err)
			continue
		}

		records := ext.Extract(projectRoot, findings)
		if err := writeProjectRecords(outputDir, entry.Name(), records); err != nil {
			log.Error("failed to write bug records", "project", projectRoot, "error", err)
			return err
		}

		allRecords = append(allRecords, records...)
		processed++
		log.Info("project extracted", "project", entry.Name(), "records", len(records))
	}

	if err := writeAllRecords(outputDir, allRecords); err != nil {
		return err
	}
	if extractOptions.Format == "sarif" {
		sarifPath := filepath.Join(outputDir, "all_bugs.sarif")
		if err := sarif.WriteReport(sarifPath, allRecords); err != nil {
			return err
		}
		log.Info("SARIF report written", "path", sarifPath)
	}

	cmd.Printf("Processed %d projects, extracted %d bug records\n", processed, len(allRecords))
	return nil
}

// writeProjectRecords writes one project's records to
// <outputDir>/<project>/<project>_bugs.json.
func writeProjectRecords(outputDir, projectName string, records []extractor.BugRecord) error {
	projectDir := filepath.Join(outputDir, projectName)
	if err := files.CreateFolderIfNotExists(projectDir); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling bug records for %q: %w", projectName, err)
	}
	return files.WriteJsonFile(filepath.Join(projectDir, projectName+"_bugs.json"), data)
}

// writeAllRecords writes the combined record set to <outputDir>/all_bugs.json.
func writeAllRecords(outputDir string, records []extractor.BugRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling combined bug records: %w", err)
	}
	return files.WriteJsonFile(filepath.Join(outputDir, "all_bugs.json"), data)
}

// Initialize flags for the extract command.
func init() {
	ExtractCmd.Flags().StringVarP(&extractOptions.Format, "format", "f", "", "Additional report format to emit (sarif).")
}
