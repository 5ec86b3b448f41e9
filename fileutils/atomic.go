package fileutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

type atomicOptions struct {
	perm  fs.FileMode
	force bool
}

// AtomicOption configures [CreateAtomic].
type AtomicOption func(*atomicOptions)

// WithPerms sets the target's permissions regardless of the umask.
func WithPerms(perm fs.FileMode) AtomicOption {
	return func(o *atomicOptions) {
		o.perm = perm
		o.force = true
	}
}

// AtomicFile is a writer whose content replaces the target only on
// [AtomicFile.Close]. Readers of the target never observe a partial write.
type AtomicFile struct {
	f      *os.File
	target string
	temp   string
	done   bool
}

// CreateAtomic opens a temporary ".update.<name>" file beside path.
func CreateAtomic(path string, opts ...AtomicOption) (*AtomicFile, error) {
	o := atomicOptions{perm: 0o644}
	for _, opt := range opts {
		opt(&o)
	}
	temp := filepath.Join(filepath.Dir(path), ".update."+filepath.Base(path))
	f, err := os.OpenFile(temp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.perm)
	if err != nil {
		return nil, err
	}
	if o.force {
		if err := f.Chmod(o.perm); err != nil {
			f.Close()
			os.Remove(temp)
			return nil, err
		}
	}
	return &AtomicFile{f: f, target: path, temp: temp}, nil
}

// Name returns the target path.
func (a *AtomicFile) Name() string { return a.target }

// Write writes p to the temporary file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// WriteString writes s.
func (a *AtomicFile) WriteString(s string) (int, error) {
	return a.f.WriteString(s)
}

// Close syncs the temporary file and renames it over the target. On failure
// the temporary file is removed and the target is left untouched.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	err := errors.Join(a.f.Sync(), a.f.Close())
	if err == nil {
		err = os.Rename(a.temp, a.target)
	}
	if err != nil {
		os.Remove(a.temp)
	}
	return err
}

// Discard drops everything written and leaves the target untouched.
func (a *AtomicFile) Discard() error {
	if a.done {
		return nil
	}
	a.done = true
	return errors.Join(a.f.Close(), os.Remove(a.temp))
}
