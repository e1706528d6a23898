package workspace

import (
	"errors"
	"io/fs"
	"os"

	appErr "skharness/pkg/errors"
)

// RemoveIfExists deletes path. A missing file is not an error; anything else
// (permissions, a non-empty directory, I/O) is returned so the caller can
// surface it as a warning.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return appErr.Wrapf(err, appErr.ArtifactCleanupFailed, "remove %s: %v", path, err).
		WithDetail("path", path)
}
