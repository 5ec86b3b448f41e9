//go:build !unix

package fileutils

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("mmap unsupported on this platform")

func mmap(*os.File, int64) ([]byte, error) { return nil, errNoMmap }

func munmap([]byte) error { return nil }
