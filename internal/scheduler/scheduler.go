// Package scheduler runs discovered projects grouped by required Java
// version: groups strictly sequential, projects within a group on a bounded
// worker pool.
package scheduler

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/bugminer-dev/bugminer/internal/jdk"
	"github.com/bugminer-dev/bugminer/internal/project"
	"github.com/bugminer-dev/bugminer/internal/runner"
	"github.com/bugminer-dev/bugminer/pkg/shared"
)

// ProjectRunner executes the run state machine for one project with an
// explicit build environment.
type ProjectRunner interface {
	Run(p project.Project, env []string) runner.RunOutcome
}

// Scheduler coordinates a batch run over version groups.
type Scheduler struct {
	workers   int
	resolver  *jdk.Resolver
	toolchain *jdk.Toolchain
	runner    ProjectRunner
	logger    hclog.Logger
}

// New creates a Scheduler with the given pool size per group.
func New(workers int, resolver *jdk.Resolver, toolchain *jdk.Toolchain, projectRunner ProjectRunner, logger hclog.Logger) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		workers:   workers,
		resolver:  resolver,
		toolchain: toolchain,
		runner:    projectRunner,
		logger:    logger,
	}
}

// Run resolves each project's Java version, groups projects by version in
// order of first appearance and executes the groups one after another. The
// worker pool of one group is fully drained before the next group starts, so
// no worker ever runs against another group's toolchain environment. Result
// arrival order within a group is not guaranteed. Exactly one outcome is
// returned per input project.
func (s *Scheduler) Run(projects []project.Project) []runner.RunOutcome {
	versions, groups := s.groupByVersion(projects)

	outcomes := make(chan runner.RunOutcome, len(projects))
	for _, version := range versions {
		group := groups[version]

		if !s.toolchain.Installed(version) {
			home := s.toolchain.HomeFor(version)
			s.logger.Error("required JDK installation is missing, skipping group",
				"version", version, "expectedHome", home, "projects", len(group))
			for _, p := range group {
				outcomes <- runner.RunOutcome{
					Project: p,
					Status:  runner.StatusError,
					Error:   fmt.Sprintf("required JDK %s is not installed at %q", version, home),
				}
			}
			continue
		}

		s.logger.Info("starting version group", "version", version, "projects", len(group), "workers", s.workers)
		env := s.toolchain.BuildEnv(version)

		shared.ForEveryWithBoundedGoroutines(s.workers, group, func(i int, p project.Project) {
			defer func() {
				if rec := recover(); rec != nil {
					s.logger.Error("worker fault", "project", p.RootPath, "panic", rec)
					outcomes <- runner.RunOutcome{
						Project: p,
						Status:  runner.StatusError,
						Error:   fmt.Sprintf("unexpected fault: %v", rec),
					}
				}
			}()
			s.logger.Info("worker started", "#", i+1, "project", p.RootPath)
			outcomes <- s.runner.Run(p, env)
		})
	}
	close(outcomes)

	var collected []runner.RunOutcome
	for outcome := range outcomes {
		collected = append(collected, outcome)
	}
	return collected
}

// groupByVersion resolves versions and buckets projects, keeping group order
// by first appearance.
func (s *Scheduler) groupByVersion(projects []project.Project) ([]string, map[string][]project.Project) {
	var versions []string
	groups := make(map[string][]project.Project)

	for _, p := range projects {
		version := s.resolver.ResolveVersion(p)
		p.JavaVersion = version
		if _, seen := groups[version]; !seen {
			versions = append(versions, version)
		}
		groups[version] = append(groups[version], p)
	}
	return versions, groups
}
