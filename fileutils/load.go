package fileutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"time"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNotFound = errors.New("file not found")
)

// mmapThreshold is the smallest file size that is memory-mapped.
const mmapThreshold = 0x4000

// view is a file's content plus whatever must be released with it.
type view struct {
	data  []byte
	mtime time.Time
	file  *os.File
	unmap func([]byte) error
}

func (v *view) release() error {
	var errs []error
	if v.unmap != nil {
		errs = append(errs, v.unmap(v.data))
		v.unmap = nil
	}
	if v.file != nil {
		errs = append(errs, v.file.Close())
		v.file = nil
	}
	v.data = nil
	return errors.Join(errs...)
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// load opens path and returns its content. With allowMmap, files of at least
// mmapThreshold bytes are mapped and the descriptor stays open until release.
func load(path string, allowMmap bool) (*view, error) {
	f, err := os.Open(path)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	v := &view{mtime: fi.ModTime()}
	size := fi.Size()

	switch {
	case size == 0:
		v.data, err = probe(f)
	case allowMmap && size >= mmapThreshold:
		data, merr := mmap(f, size)
		if merr == nil {
			v.data, v.file, v.unmap = data, f, munmap
			return v, nil
		}
		v.data, err = readSized(f, size)
	default:
		v.data, err = readSized(f, size)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// probe reads a file whose reported size is zero. A pseudo-file that yields
// data is read to the end.
func probe(f *os.File) ([]byte, error) {
	var first [1]byte
	n, err := f.Read(first[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	rest, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return append(first[:1:1], rest...), nil
}

// readSized reads up to size bytes and shrinks the buffer to what was read.
func readSized(f *os.File, size int64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
