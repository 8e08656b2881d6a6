package storage

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// writeFileAtomic replaces path via write-temp-then-rename so a crash
// mid-write never leaves a truncated file behind. Parent directories are
// created on demand.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "create directory %s failed", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp file failed")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return pkgerrors.Wrapf(err, "write %s failed", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return pkgerrors.Wrapf(err, "close %s failed", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return pkgerrors.Wrapf(err, "rename %s to %s failed", tmpPath, path)
	}
	return nil
}
