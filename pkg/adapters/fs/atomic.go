package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix is the prefix of the scratch files used by atomic writes.
// The watcher ignores files carrying it.
const TempFilePrefix = ".jot-tmp-"

// writeFunc is the signature of the collection writer; tests swap it to
// simulate disk failures.
type writeFunc func(filename string, data []byte, perm os.FileMode) error

// writeFileAtomic replaces filename with data. The bytes go to a scratch file
// in the same directory, are fsynced, and the scratch file is renamed over
// the target. A reader observes the old collection or the new one, never a
// partial write. An existing target keeps its permission bits.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)

	if info, statErr := os.Stat(filename); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write temp file: %w", err), tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return errors.Join(fmt.Errorf("sync temp file: %w", err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry of a rename. Some platforms (Windows)
// cannot open directories for syncing; the rename is already in place there.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
