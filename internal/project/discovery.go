package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Discovery walks a directory tree and registers top-level project roots.
type Discovery struct {
	logger hclog.Logger
}

// NewDiscovery creates a new Discovery instance.
func NewDiscovery(logger hclog.Logger) *Discovery {
	return &Discovery{logger: logger}
}

// Discover walks the tree under root and returns every top-level project it
// finds. A directory qualifies when it holds a recognized build descriptor.
// Qualifying directories are collapsed onto their highest ancestor under root
// that also holds a descriptor, so nested modules are never registered
// separately. Paths containing "android" (case-insensitive) are skipped
// entirely. Zero matches is not an error.
func (d *Discovery) Discover(root string) ([]Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	var projects []Project
	registered := make(map[string]bool)

	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			d.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if strings.Contains(strings.ToLower(rel), "android") {
			d.logger.Debug("skipping android path", "path", path)
			return filepath.SkipDir
		}

		if _, ok := DetectBuildSystem(path); !ok {
			return nil
		}

		top := climbToTopmost(absRoot, path)
		if registered[top] {
			return filepath.SkipDir
		}

		buildSystem, _ := DetectBuildSystem(top)
		projects = dropDescendants(projects, registered, top)
		registered[top] = true
		projects = append(projects, Project{RootPath: top, BuildSystem: buildSystem})
		d.logger.Info("project discovered", "path", top, "buildSystem", buildSystem)

		// The registered project's subtree must not yield further
		// projects; nested modules belong to their top-level root.
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", absRoot, err)
	}

	return projects, nil
}

// climbToTopmost returns the highest ancestor of dir, still under root, that
// holds a build descriptor.
func climbToTopmost(root, dir string) string {
	current := dir
	for current != root {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		if _, ok := DetectBuildSystem(parent); ok {
			current = parent
			continue
		}
		break
	}
	return current
}

// dropDescendants removes registered projects living under top.
func dropDescendants(projects []Project, registered map[string]bool, top string) []Project {
	kept := projects[:0]
	for _, p := range projects {
		if isDescendant(top, p.RootPath) {
			delete(registered, p.RootPath)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// isDescendant reports whether path lives strictly under ancestor.
func isDescendant(ancestor, path string) bool {
	if ancestor == path {
		return false
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}
