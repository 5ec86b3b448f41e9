package osutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// FileType names the kind of a directory entry.
type FileType string

const (
	TypeFile      FileType = "file"
	TypeDirectory FileType = "directory"
	TypeSymlink   FileType = "symlink"
	TypeCharDev   FileType = "chardev"
	TypeBlock     FileType = "block"
	TypeSocket    FileType = "socket"
	TypeFIFO      FileType = "fifo"
	TypeUnknown   FileType = "unknown"
)

// String returns the type name.
func (t FileType) String() string { return string(t) }

// DirEntry is a (name, type) pair as produced by [Readdir].
type DirEntry struct {
	Name string   `json:"name" yaml:"name"`
	Type FileType `json:"type" yaml:"type"`
}

// Row implements the report row contract.
func (e DirEntry) Row() []string { return []string{e.Name, string(e.Type)} }

// Header implements the report header contract.
func (e DirEntry) Header() []string { return []string{"Name", "Type"} }

// String returns the entry name.
func (e DirEntry) String() string { return e.Name }

// Readdir lists dir as (name, type) pairs in name order. Symlinks are
// reported as symlinks, not as their targets.
func Readdir(dir string) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirEntry{Name: e.Name(), Type: modeType(e.Type())})
	}
	return out, nil
}

// ListdirFiles returns the names of regular files in dir. With
// followSymlinks, a symlink counts when its target is a regular file and a
// dangling symlink is skipped.
func ListdirFiles(dir string, followSymlinks bool) ([]string, error) {
	return listdir(dir, followSymlinks, fs.FileMode.IsRegular)
}

// ListdirDirs returns the names of directories in dir, following symlinks
// when followSymlinks is set.
func ListdirDirs(dir string, followSymlinks bool) ([]string, error) {
	return listdir(dir, followSymlinks, fs.FileMode.IsDir)
}

func listdir(dir string, follow bool, want func(fs.FileMode) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		mode := e.Type()
		if follow && mode&fs.ModeSymlink != 0 {
			fi, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, err
			}
			mode = fi.Mode()
		}
		if want(mode) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func modeType(m fs.FileMode) FileType {
	switch {
	case m.IsRegular():
		return TypeFile
	case m&fs.ModeDir != 0:
		return TypeDirectory
	case m&fs.ModeSymlink != 0:
		return TypeSymlink
	case m&fs.ModeCharDevice != 0:
		return TypeCharDev
	case m&fs.ModeDevice != 0:
		return TypeBlock
	case m&fs.ModeSocket != 0:
		return TypeSocket
	case m&fs.ModeNamedPipe != 0:
		return TypeFIFO
	default:
		return TypeUnknown
	}
}

// Abssymlink resolves the symlink at p one level. A relative target is
// taken relative to the directory holding the link. The result is
// normalized.
func Abssymlink(p string) (string, error) {
	target, err := os.Readlink(p)
	if err != nil {
		return "", err
	}
	if len(target) == 0 || target[0] != '/' {
		target = Pjoin(filepath.Dir(p), target)
	}
	return Normpath(target), nil
}

// Abspath makes p absolute and resolves it one level if it is a symlink.
// A path that does not exist or is not a symlink is returned normalized.
func Abspath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := Abssymlink(abs)
	if err != nil {
		if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.EINVAL) {
			return Normpath(abs), nil
		}
		return "", err
	}
	return resolved, nil
}
