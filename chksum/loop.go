package chksum

import (
	"bytes"
	"context"
	"errors"
	"hash"
	"io"
	"math/big"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/bjaus/snakeoil/fileutils"
)

// BlockSize is the read size of the hashing loop.
const BlockSize = 1 << 17

// queueDepth bounds how many blocks each parallel sink may lag behind.
const queueDepth = 8

// LoopOverReader reads r in [BlockSize] blocks and writes every block to
// each sink. With parallel and at least two sinks, each sink consumes its
// blocks on its own goroutine. The first sink error or context cancellation
// stops the loop.
func LoopOverReader(ctx context.Context, r io.Reader, parallel bool, sinks ...io.Writer) error {
	if !parallel || len(sinks) < 2 {
		return loopSerial(ctx, r, sinks)
	}

	g, gctx := errgroup.WithContext(ctx)
	queues := make([]chan []byte, len(sinks))
	for i, sink := range sinks {
		q := make(chan []byte, queueDepth)
		queues[i] = q
		g.Go(func() error {
			for blk := range q {
				if _, err := sink.Write(blk); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		for {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf := make([]byte, BlockSize)
			n, err := io.ReadFull(r, buf)
			if n > 0 {
				for _, q := range queues {
					select {
					case q <- buf[:n]:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})
	return g.Wait()
}

func loopSerial(ctx context.Context, r io.Reader, sinks []io.Writer) error {
	buf := make([]byte, BlockSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			for _, sink := range sinks {
				if _, werr := sink.Write(buf[:n]); werr != nil {
					return werr
				}
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type fileOptions struct {
	parallel bool
}

// FileOption configures [File].
type FileOption func(*fileOptions)

// Parallel hashes on one goroutine per handler. Default: true.
func Parallel(on bool) FileOption {
	return func(o *fileOptions) { o.parallel = on }
}

// File computes the named checksums of path. The "size" checksum is the
// lstat size, or -1 when path cannot be lstat'ed.
func File(ctx context.Context, path string, names []string, opts ...FileOption) (map[string]*big.Int, error) {
	o := fileOptions{parallel: true}
	for _, opt := range opts {
		opt(&o)
	}

	out := make(map[string]*big.Int, len(names))
	var (
		hashNames []string
		hashes    []hash.Hash
	)
	for _, name := range names {
		h, err := Get(name)
		if err != nil {
			return nil, err
		}
		if name == "size" {
			out[name] = lstatSize(path)
			continue
		}
		hashNames = append(hashNames, name)
		hashes = append(hashes, h.New())
	}
	if len(hashes) == 0 {
		return out, nil
	}

	data, release, err := fileutils.MapFile(path)
	if err != nil {
		return nil, err
	}
	defer release()

	sinks := make([]io.Writer, len(hashes))
	for i, h := range hashes {
		sinks[i] = h
	}
	if err := LoopOverReader(ctx, bytes.NewReader(data), o.parallel, sinks...); err != nil {
		return nil, err
	}
	for i, name := range hashNames {
		out[name] = new(big.Int).SetBytes(hashes[i].Sum(nil))
	}
	return out, nil
}

func lstatSize(path string) *big.Int {
	fi, err := os.Lstat(path)
	if err != nil {
		return big.NewInt(-1)
	}
	return big.NewInt(fi.Size())
}
