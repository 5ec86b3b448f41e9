// Package chksum computes file checksums through a registry of named
// handlers.
//
// Each [Handler] turns a byte stream into a number, rendered as fixed-width
// lowercase hex (or decimal for "size"). [File] hashes one file with any set
// of handlers in a single pass, fanning the blocks out to one goroutine per
// hash when parallel hashing is enabled.
package chksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math/big"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // rmd160 digests are part of the manifest format.
	"golang.org/x/crypto/sha3"

	"github.com/bjaus/snakeoil/chksum/whirlpool"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownChksum = errors.New("unknown checksum")
	ErrInvalidValue  = errors.New("invalid checksum value")
)

// Handler describes one checksum type.
type Handler struct {
	// Name is the registry key, e.g. "sha256".
	Name string
	// HexSize is the rendered width; zero means no padding.
	HexSize int

	new  func() hash.Hash
	base int
}

// New returns a fresh hash for this handler.
func (h Handler) New() hash.Hash { return h.new() }

// Long2Str renders v in the handler's textual form.
func (h Handler) Long2Str(v *big.Int) string {
	s := v.Text(h.base)
	if len(s) < h.HexSize {
		s = strings.Repeat("0", h.HexSize-len(s)) + s
	}
	return s
}

// Str2Long parses a value rendered by [Handler.Long2Str].
func (h Handler) Str2Long(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, h.base)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidValue, h.Name, s)
	}
	return v, nil
}

func hexHandler(name string, size int, fn func() hash.Hash) Handler {
	return Handler{Name: name, HexSize: size, new: fn, base: 16}
}

func mustHash(fn func([]byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

var handlers = map[string]Handler{
	"md5":       hexHandler("md5", 32, md5.New),
	"sha1":      hexHandler("sha1", 40, sha1.New),
	"rmd160":    hexHandler("rmd160", 40, ripemd160.New),
	"sha256":    hexHandler("sha256", 64, sha256.New),
	"sha512":    hexHandler("sha512", 128, sha512.New),
	"sha3_256":  hexHandler("sha3_256", 64, func() hash.Hash { return sha3.New256() }),
	"sha3_512":  hexHandler("sha3_512", 128, func() hash.Hash { return sha3.New512() }),
	"blake2b":   hexHandler("blake2b", 128, mustHash(blake2b.New512)),
	"blake2s":   hexHandler("blake2s", 64, mustHash(blake2s.New256)),
	"whirlpool": hexHandler("whirlpool", 128, whirlpool.New),
	"size":      {Name: "size", new: newSizeHash, base: 10},
}

// Get returns the handler registered under name.
func Get(name string) (Handler, error) {
	h, ok := handlers[name]
	if !ok {
		return Handler{}, fmt.Errorf("%w: %q", ErrUnknownChksum, name)
	}
	return h, nil
}

// Names returns the registered checksum names in sorted order.
func Names() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// sizeHash counts bytes; its sum is the big-endian count.
type sizeHash struct{ n uint64 }

func newSizeHash() hash.Hash { return new(sizeHash) }

func (s *sizeHash) Write(p []byte) (int, error) {
	s.n += uint64(len(p))
	return len(p), nil
}

func (s *sizeHash) Sum(b []byte) []byte { return binary.BigEndian.AppendUint64(b, s.n) }
func (s *sizeHash) Reset()              { s.n = 0 }
func (s *sizeHash) Size() int           { return 8 }
func (s *sizeHash) BlockSize() int      { return 1 }
