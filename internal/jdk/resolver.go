package jdk

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-hclog"

	"github.com/bugminer-dev/bugminer/internal/project"
)

// Version requirement patterns checked in order of precedence.
var (
	gradleSourcePattern = regexp.MustCompile(`sourceCompatibility\s*=\s*['"]?(\d+)['"]?`)
	gradleTargetPattern = regexp.MustCompile(`targetCompatibility\s*=\s*['"]?(\d+)['"]?`)
	mavenSourcePattern  = regexp.MustCompile(`<maven\.compiler\.source>(\d+)</maven\.compiler\.source>`)
	mavenTargetPattern  = regexp.MustCompile(`<maven\.compiler\.target>(\d+)</maven\.compiler\.target>`)
)

// Resolver determines the Java version a project's build descriptor declares.
type Resolver struct {
	defaultVersion string
	logger         hclog.Logger
}

// NewResolver creates a Resolver falling back to defaultVersion.
func NewResolver(defaultVersion string, logger hclog.Logger) *Resolver {
	return &Resolver{defaultVersion: defaultVersion, logger: logger}
}

// ResolveVersion returns the first declared Java version found in the
// project's build descriptors, checking Gradle compatibility assignments
// before Maven compiler properties. Unreadable or silent descriptors degrade
// to the configured default; this never fails.
func (r *Resolver) ResolveVersion(p project.Project) string {
	if version, ok := r.matchDescriptor(p.RootPath, project.GradleDescriptor, gradleSourcePattern, gradleTargetPattern); ok {
		return version
	}
	if version, ok := r.matchDescriptor(p.RootPath, project.MavenDescriptor, mavenSourcePattern, mavenTargetPattern); ok {
		return version
	}

	r.logger.Debug("no version requirement declared, using default",
		"project", p.RootPath, "default", r.defaultVersion)
	return r.defaultVersion
}

// matchDescriptor reads one descriptor file and applies the given patterns in
// order, returning the first captured version.
func (r *Resolver) matchDescriptor(rootPath, descriptor string, patterns ...*regexp.Regexp) (string, bool) {
	path := filepath.Join(rootPath, descriptor)
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Debug("descriptor unreadable", "path", path, "error", err)
		}
		return "", false
	}

	for _, pattern := range patterns {
		if match := pattern.FindSubmatch(content); match != nil {
			return string(match[1]), true
		}
	}
	return "", false
}
