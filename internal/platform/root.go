package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindStoreFile looks upwards from startDir for a regular file called name
// and returns its absolute path. It fails when the filesystem root is
// reached without a match.
func FindStoreFile(startDir, name string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found above %s", name, abs)
}
