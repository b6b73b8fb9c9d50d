package files

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

// CreateFolderIfNotExists checks if a folder exists, and if not, creates it.
func CreateFolderIfNotExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	return nil
}

// WriteJsonFile writes JSON data to the specified file.
func WriteJsonFile(outputFile string, data []byte) error {
	file, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed creating file: %w", err)
	}
	defer file.Close()

	datawriter := bufio.NewWriter(file)
	defer datawriter.Flush()

	if _, err := datawriter.Write(data); err != nil {
		return fmt.Errorf("error writing data to file: %w", err)
	}

	return nil
}

// Exists reports whether the given path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// removeAll is swapped out in tests to simulate transient removal failures.
var removeAll = os.RemoveAll

// RemoveDirWithRetry removes a directory tree, retrying up to maxAttempts
// times with a fixed delay between attempts. The directory may be transiently
// locked by a process that has not fully exited yet, so removal errors are
// only reported once the attempts are exhausted and the directory still
// exists.
func RemoveDirWithRetry(dir string, maxAttempts int, delay time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if !Exists(dir) {
			return nil
		}
		removeAll(dir)
		if !Exists(dir) {
			return nil
		}
		if attempt < maxAttempts {
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("directory %q still exists after %d removal attempts", dir, maxAttempts)
}

// EnsureExecutable marks the file at path as executable if it exists.
// A missing file is not an error.
func EnsureExecutable(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("unable to check file %q: %w", path, err)
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("unable to mark %q executable: %w", path, err)
	}
	return nil
}
