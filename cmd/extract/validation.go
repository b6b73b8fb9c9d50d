package extract

import (
	"fmt"
	"os"

	"github.com/bugminer-dev/bugminer/pkg/shared/files"
)

// validateExtractArgs checks the positional arguments and returns the
// projects directory and the output directory.
func validateExtractArgs(options *RunOptionsExtract, args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("a projects directory and an output directory must be specified")
	}

	projectsDir, outputDir := args[0], args[1]
	info, err := os.Stat(projectsDir)
	if err != nil {
		return "", "", fmt.Errorf("cannot access %q: %w", projectsDir, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("%q is not a directory", projectsDir)
	}

	if options.Format != "" && options.Format != "sarif" {
		return "", "", fmt.Errorf("unsupported format %q, only 'sarif' is available", options.Format)
	}

	if err := files.CreateFolderIfNotExists(outputDir); err != nil {
		return "", "", err
	}

	return projectsDir, outputDir, nil
}
