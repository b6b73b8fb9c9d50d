package runner

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// CommandRunner executes an external command in a working directory with an
// explicit environment. Tests inject a fake; production uses os/exec.
type CommandRunner interface {
	Run(dir string, env []string, name string, args ...string) error
}

// execCommandRunner runs commands through os/exec, capturing output for logs.
type execCommandRunner struct {
	logger hclog.Logger
}

// NewExecCommandRunner returns the os/exec-backed CommandRunner.
func NewExecCommandRunner(logger hclog.Logger) CommandRunner {
	return &execCommandRunner{logger: logger}
}

func (e *execCommandRunner) Run(dir string, env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("executing command", "dir", dir, "command", name, "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, stderr.String())
	}
	return nil
}
