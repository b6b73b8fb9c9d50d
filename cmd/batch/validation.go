package batch

import (
	"fmt"
	"os"
)

// validateBatchArgs checks the positional arguments and returns the root
// directory to scan.
func validateBatchArgs(options *RunOptionsBatch, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("exactly one directory to scan must be specified")
	}

	rootDir := args[0]
	info, err := os.Stat(rootDir)
	if err != nil {
		return "", fmt.Errorf("cannot access %q: %w", rootDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", rootDir)
	}

	if options.Workers < 0 {
		return "", fmt.Errorf("workers must be positive: %d", options.Workers)
	}

	return rootDir, nil
}
