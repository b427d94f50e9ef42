package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
)

// RotatingWriter is an io.WriteCloser that appends to a file and rotates it
// once it grows past a size limit: cli.log -> cli.log.1 -> ... -> cli.log.N.
type RotatingWriter struct {
	path        string
	maxBytes    int64
	backupCount int

	mu      sync.Mutex
	file    *os.File
	written int64
}

// NewRotatingWriter opens path for appending. A maxBytes of zero disables
// rotation; backupCount is the number of rotated files kept.
// The caller is responsible for ensuring the parent directory exists.
func NewRotatingWriter(path string, maxBytes int64, backupCount int) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:        path,
		maxBytes:    maxBytes,
		backupCount: backupCount,
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer with automatic rotation.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, errors.Newf("log file %s is closed", w.path)
	}

	if w.maxBytes > 0 && w.written > 0 && w.written+int64(len(p)) > w.maxBytes {
		if err := w.rotate(); err != nil {
			// Keep logging to the current file rather than dropping records.
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
			if w.file == nil {
				if err := w.openFile(); err != nil {
					return 0, err
				}
			}
		}
	}

	n, err := w.file.Write(p)
	w.written += int64(n)
	return n, err
}

// Close closes the underlying file. Further writes fail.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotatingWriter) openFile() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening log file %s", w.path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "stat log file %s", w.path)
	}

	w.file = f
	w.written = info.Size()
	return nil
}

// rotate shifts backups up by one, dropping the oldest, and reopens path.
func (w *RotatingWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return errors.Wrap(err, "closing log file")
	}
	w.file = nil

	if w.backupCount > 0 {
		_ = os.Remove(backupName(w.path, w.backupCount))
		for i := w.backupCount - 1; i >= 1; i-- {
			src := backupName(w.path, i)
			if _, err := os.Stat(src); err == nil {
				_ = os.Rename(src, backupName(w.path, i+1))
			}
		}
		if err := os.Rename(w.path, backupName(w.path, 1)); err != nil {
			return errors.Wrap(err, "rotating log file")
		}
	} else if err := os.Truncate(w.path, 0); err != nil {
		return errors.Wrap(err, "truncating log file")
	}

	return w.openFile()
}

func backupName(path string, n int) string {
	return filepath.Clean(fmt.Sprintf("%s.%d", path, n))
}
