package fileutils

import "errors"

// Readfile returns the content of path. With swallowMissing, a missing file
// yields "" and no error.
func Readfile(path string, swallowMissing bool) (string, error) {
	src, err := load(path, false)
	if err != nil {
		if swallowMissing && errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(src.data), nil
}

// MapFile returns a read-only view of path. Large files are memory-mapped;
// the view must not be used after release is called.
func MapFile(path string) (data []byte, release func() error, err error) {
	src, err := load(path, true)
	if err != nil {
		return nil, nil, err
	}
	return src.data, src.release, nil
}
