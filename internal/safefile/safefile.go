// Package safefile provides hardened reads of user-supplied files.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

var (
	// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets
	// and directories.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrEmpty is returned by ReadRegular for a zero-length file.
	ErrEmpty = errors.New("file is empty")

	// ErrTooLarge matches every *TooLargeError.
	ErrTooLarge = errors.New("file too large")
)

// TooLargeError reports a file exceeding the read limit.
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s (max %s)", humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Max)))
}

func (e *TooLargeError) Is(target error) bool { return target == ErrTooLarge }

// OpenRegular opens path and verifies it is a regular file.
//
// The path is checked with os.Lstat before opening so that symlinks are
// rejected, then the opened descriptor is stat-ed again in case the file was
// swapped in between. A small window remains between Lstat and Open since
// O_NOFOLLOW is not portable.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// ReadRegular reads the whole of a regular file of at most max bytes.
//
// The size is checked against the descriptor's stat and again after the
// read, which is bounded to max+1 bytes so a file growing in between is
// still caught.
func ReadRegular(path string, max int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, ErrEmpty
	}
	if info.Size() > max {
		return nil, &TooLargeError{Size: info.Size(), Max: max}
	}

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, &TooLargeError{Size: int64(len(data)), Max: max}
	}
	return data, nil
}
