package project

import (
	"os"
	"path/filepath"
)

// Build descriptor file names recognized during discovery.
const (
	MavenDescriptor  = "pom.xml"
	GradleDescriptor = "build.gradle"
)

// BuildSystem is the build tool a project is compiled with. It is determined
// once during discovery and carried on the Project, never re-detected at
// later pipeline stages.
type BuildSystem string

const (
	BuildSystemMaven  BuildSystem = "maven"
	BuildSystemGradle BuildSystem = "gradle"

	// BuildSystemAmbiguous marks a project root holding both descriptor
	// files. The run state machine reports it as an error instead of
	// guessing a precedence.
	BuildSystemAmbiguous BuildSystem = "ambiguous"
)

// Project is a discovered unit of source code with its own build descriptor,
// analyzed independently. Identity is the canonicalized absolute root path.
type Project struct {
	RootPath    string      `json:"root_path"`
	BuildSystem BuildSystem `json:"build_system"`
	JavaVersion string      `json:"java_version,omitempty"`
}

// Name returns the project's directory name, used for project-scoped IDs.
func (p Project) Name() string {
	return filepath.Base(p.RootPath)
}

// DetectBuildSystem inspects a directory for recognized build descriptors.
// The second return value is false when the directory holds none.
func DetectBuildSystem(dir string) (BuildSystem, bool) {
	maven := fileExists(filepath.Join(dir, MavenDescriptor))
	gradle := fileExists(filepath.Join(dir, GradleDescriptor))

	switch {
	case maven && gradle:
		return BuildSystemAmbiguous, true
	case maven:
		return BuildSystemMaven, true
	case gradle:
		return BuildSystemGradle, true
	default:
		return "", false
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
