package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/cfy/internal/errors"
)

// MaxFileSize is the largest configuration file ReadFileWithLimit accepts.
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that input exceeded the read limit.
var ErrFileTooLarge = errors.New("input exceeds maximum size")

// ReadFileWithLimit reads a file of at most MaxFileSize bytes.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), MaxFileSize)
	}
	return ReadLimited(f, MaxFileSize)
}

// ReadLimited reads r to the end, failing with ErrFileTooLarge once more
// than limit bytes have been read.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d bytes", limit)
	}
	return data, nil
}
