package jdk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Toolchain resolves Java versions to concrete JDK installations and builds
// the process environment for build invocations. The environment is an
// explicit value handed to each command instead of a process-wide mutation,
// so two version groups can never race over JAVA_HOME.
type Toolchain struct {
	homePattern string
	mavenOpts   string
}

// NewToolchain creates a Toolchain from the configured home pattern and
// MAVEN_OPTS value.
func NewToolchain(homePattern, mavenOpts string) *Toolchain {
	return &Toolchain{homePattern: homePattern, mavenOpts: mavenOpts}
}

// HomeFor returns the expected installation path for a Java version.
func (t *Toolchain) HomeFor(version string) string {
	return fmt.Sprintf(t.homePattern, version)
}

// Installed reports whether the JDK for the given version is present.
func (t *Toolchain) Installed(version string) bool {
	info, err := os.Stat(t.HomeFor(version))
	return err == nil && info.IsDir()
}

// BuildEnv returns a complete process environment selecting the JDK for the
// given version: JAVA_HOME points at the installation, its bin directory is
// prepended to PATH and MAVEN_OPTS carries the configured build memory
// options. All other variables are inherited from the current process.
func (t *Toolchain) BuildEnv(version string) []string {
	home := t.HomeFor(version)

	var env []string
	path := ""
	for _, kv := range os.Environ() {
		switch {
		case strings.HasPrefix(kv, "JAVA_HOME="), strings.HasPrefix(kv, "MAVEN_OPTS="):
			continue
		case strings.HasPrefix(kv, "PATH="):
			path = strings.TrimPrefix(kv, "PATH=")
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"JAVA_HOME="+home,
		"PATH="+filepath.Join(home, "bin")+string(os.PathListSeparator)+path,
		"MAVEN_OPTS="+t.mavenOpts,
	)
	return env
}
