// Package runner drives the per-project run state machine around an Infer
// invocation: permissions, stale artifact cleanup, build dispatch and report
// verification. All state is local to one project's worker.
package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/bugminer-dev/bugminer/internal/infer"
	"github.com/bugminer-dev/bugminer/internal/project"
	"github.com/bugminer-dev/bugminer/pkg/shared/config"
	"github.com/bugminer-dev/bugminer/pkg/shared/files"
)

// RunOutcome is the immutable result of one project run within a batch.
type RunOutcome struct {
	Project  project.Project `json:"project"`
	Status   Status          `json:"status"`
	Error    string          `json:"error_message,omitempty"`
	Findings []infer.Finding `json:"raw_findings,omitempty"`
}

// Runner executes the run state machine for single projects.
type Runner struct {
	cleanupRetries config.Retry
	reportRetries  config.Retry
	cmd            CommandRunner
	logger         hclog.Logger
}

// New creates a Runner with the os/exec command backend.
func New(cfg *config.Config, logger hclog.Logger) *Runner {
	return NewWithCommandRunner(cfg, NewExecCommandRunner(logger), logger)
}

// NewWithCommandRunner creates a Runner with an injected command backend.
func NewWithCommandRunner(cfg *config.Config, cmd CommandRunner, logger hclog.Logger) *Runner {
	return &Runner{
		cleanupRetries: cfg.Batch.CleanupRetries,
		reportRetries:  cfg.Batch.ReportRetries,
		cmd:            cmd,
		logger:         logger,
	}
}

// Run drives one project from Init to Done or Error. env is the complete
// process environment for build invocations, selected for the project's
// version group by the scheduler. A fatal step produces an error outcome;
// nothing is ever propagated as a Go error, so one project can never abort
// its siblings.
func (r *Runner) Run(p project.Project, env []string) RunOutcome {
	state := StateInit
	logger := r.logger.With("project", p.RootPath)

	fail := func(format string, args ...interface{}) RunOutcome {
		reason := fmt.Sprintf(format, args...)
		logger.Error("project run failed", "state", state, "reason", reason)
		return RunOutcome{Project: p, Status: StatusError, Error: reason}
	}

	// Init -> PermissionsChecked
	if err := files.EnsureExecutable(filepath.Join(p.RootPath, "gradlew")); err != nil {
		return fail("failed to prepare build wrapper permissions: %v", err)
	}
	state = StatePermissionsChecked

	// -> ArtifactsCleaned
	outDir := infer.OutDir(p.RootPath)
	if err := files.RemoveDirWithRetry(outDir, r.cleanupRetries.MaxAttempts, r.cleanupRetries.Delay); err != nil {
		return fail("could not clear stale artifacts: %v", err)
	}
	tenv := filepath.Join(p.RootPath, infer.GlobalTenvName)
	if err := os.Remove(tenv); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove stale type environment cache", "path", tenv, "error", err)
	}
	state = StateArtifactsCleaned

	// -> BuildDispatched
	buildArgs, err := buildCommand(p.BuildSystem)
	if err != nil {
		return fail("%v", err)
	}
	if err := r.cmd.Run(p.RootPath, env, "infer", buildArgs...); err != nil {
		// Partial or incremental builds can still yield usable capture
		// data, so a non-zero build exit only warns.
		logger.Warn("build exited abnormally, checking capture artifacts anyway", "error", err)
	}
	state = StateBuildDispatched

	// -> ArtifactVerified
	if !files.Exists(outDir) {
		return fail("capture failed: output directory %q was not produced", outDir)
	}
	r.seedRunState(logger, outDir)
	state = StateArtifactVerified

	// -> ReportVerified
	reportPath := infer.ReportPath(p.RootPath)
	if err := r.regenerateReport(logger, p.RootPath, env, reportPath); err != nil {
		return fail("%v", err)
	}
	state = StateReportVerified

	// -> Done
	findings, err := infer.LoadReport(reportPath)
	if err != nil {
		logger.Warn("report could not be decoded, continuing with no findings", "error", err)
		findings = nil
	}
	state = StateDone
	logger.Info("project run finished", "state", state, "findings", len(findings))

	return RunOutcome{Project: p, Status: StatusSuccess, Findings: findings}
}

// buildCommand returns the analyzer-wrapped compile invocation for the
// project's build system.
func buildCommand(buildSystem project.BuildSystem) ([]string, error) {
	switch buildSystem {
	case project.BuildSystemMaven:
		return []string{"run", "--keep-going", "--", "mvn", "clean", "compile", "-DskipTests"}, nil
	case project.BuildSystemGradle:
		return []string{"run", "--keep-going", "--", "./gradlew", "clean", "compileJava"}, nil
	case project.BuildSystemAmbiguous:
		return nil, fmt.Errorf("ambiguous build system: both %s and %s are present", project.MavenDescriptor, project.GradleDescriptor)
	default:
		return nil, fmt.Errorf("no recognized build descriptor")
	}
}

// regenerateReport ensures the structured report exists, invoking the
// analyzer's report step with bounded retries when it is missing.
func (r *Runner) regenerateReport(logger hclog.Logger, rootPath string, env []string, reportPath string) error {
	if files.Exists(reportPath) {
		return nil
	}

	for attempt := 1; attempt <= r.reportRetries.MaxAttempts; attempt++ {
		logger.Info("report missing, regenerating", "attempt", attempt, "maxAttempts", r.reportRetries.MaxAttempts)
		if err := r.cmd.Run(rootPath, env, "infer", "report"); err != nil {
			logger.Warn("report generation failed", "attempt", attempt, "error", err)
		}
		if files.Exists(reportPath) {
			return nil
		}
		if attempt < r.reportRetries.MaxAttempts {
			time.Sleep(r.reportRetries.Delay)
		}
	}
	return fmt.Errorf("report %q still missing after %d generation attempts", reportPath, r.reportRetries.MaxAttempts)
}

// seedRunState writes the analyzer's run state marker when a partial capture
// left it out. Failure is logged, not fatal.
func (r *Runner) seedRunState(logger hclog.Logger, outDir string) {
	statePath := filepath.Join(outDir, infer.RunStateFileName)
	if files.Exists(statePath) {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"version":   "1.0",
		"timestamp": time.Now().Unix(),
	})
	if err == nil {
		err = os.WriteFile(statePath, payload, 0644)
	}
	if err != nil {
		logger.Warn("failed to seed analyzer run state file", "path", statePath, "error", err)
	}
}
