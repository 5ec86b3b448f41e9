// Package whirlpool implements the Whirlpool hash function (ISO/IEC
// 10118-3:2004) with a 512-bit digest.
//
// The eight 256-entry lookup tables are derived at init from the mini-box
// construction of the S-box and the circulant MDS matrix, so each round is a
// XOR of eight table lookups per output word.
package whirlpool

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// Size is the size of a Whirlpool checksum in bytes.
const Size = 64

// BlockSize is the block size of Whirlpool in bytes.
const BlockSize = 64

const rounds = 10

var (
	sbox [256]byte
	tab  [8][256]uint64
	rc   [rounds + 1]uint64
)

func init() {
	e := [16]byte{0x1, 0xB, 0x9, 0xC, 0xD, 0x6, 0xF, 0x3, 0xE, 0x8, 0x7, 0x4, 0xA, 0x2, 0x5, 0x0}
	r := [16]byte{0x7, 0xC, 0xB, 0xD, 0xE, 0x4, 0x9, 0xF, 0x6, 0x3, 0x8, 0xA, 0x2, 0x5, 0x1, 0x0}
	var einv [16]byte
	for i, v := range e {
		einv[v] = byte(i)
	}
	for u := range 256 {
		a, b := e[u>>4], einv[u&15]
		t := r[a^b]
		sbox[u] = e[a^t]<<4 | einv[b^t]
	}

	mds := [8]byte{1, 1, 4, 1, 8, 5, 2, 9}
	for x := range 256 {
		var v uint64
		for j, m := range mds {
			v |= uint64(gfmul(sbox[x], m)) << (56 - 8*j)
		}
		for k := range 8 {
			tab[k][x] = bits.RotateLeft64(v, -8*k)
		}
	}

	for n := 1; n <= rounds; n++ {
		rc[n] = binary.BigEndian.Uint64(sbox[8*(n-1) : 8*n])
	}
}

// gfmul multiplies in GF(2^8) modulo x^8+x^4+x^3+x^2+1.
func gfmul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1d
		}
		b >>= 1
	}
	return p
}

type digest struct {
	h      [8]uint64
	buf    [BlockSize]byte
	nx     int
	length uint64
}

// New returns a new hash.Hash computing the Whirlpool checksum.
func New() hash.Hash {
	return new(digest)
}

// Sum returns the Whirlpool checksum of data.
func Sum(data []byte) [Size]byte {
	var d digest
	d.Write(data)
	var out [Size]byte
	d.checkSum(out[:0])
	return out
}

func (d *digest) Reset() { *d = digest{} }

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)
	if d.nx > 0 {
		c := copy(d.buf[d.nx:], p)
		d.nx += c
		p = p[c:]
		if d.nx == BlockSize {
			d.block(d.buf[:])
			d.nx = 0
		}
	}
	if len(p) >= BlockSize {
		full := len(p) &^ (BlockSize - 1)
		d.block(p[:full])
		p = p[full:]
	}
	if len(p) > 0 {
		d.nx = copy(d.buf[:], p)
	}
	return n, nil
}

func (d *digest) Sum(in []byte) []byte {
	d0 := *d
	return d0.checkSum(in)
}

func (d *digest) checkSum(in []byte) []byte {
	length := d.length
	var pad [BlockSize + 32]byte
	pad[0] = 0x80
	n := 32 - int(length%BlockSize)
	if n <= 0 {
		n += BlockSize
	}
	d.Write(pad[:n])

	var lenBlock [32]byte
	binary.BigEndian.PutUint64(lenBlock[16:], length>>61)
	binary.BigEndian.PutUint64(lenBlock[24:], length<<3)
	d.Write(lenBlock[:])

	for _, w := range d.h {
		in = binary.BigEndian.AppendUint64(in, w)
	}
	return in
}

func (d *digest) block(p []byte) {
	for len(p) >= BlockSize {
		var blk, key, state [8]uint64
		for i := range blk {
			blk[i] = binary.BigEndian.Uint64(p[8*i:])
			key[i] = d.h[i]
			state[i] = blk[i] ^ key[i]
		}
		for n := 1; n <= rounds; n++ {
			key = round(&key, &[8]uint64{rc[n]})
			state = round(&state, &key)
		}
		for i := range d.h {
			d.h[i] ^= state[i] ^ blk[i]
		}
		p = p[BlockSize:]
	}
}

// round applies one Whirlpool round to in, keyed by key.
func round(in, key *[8]uint64) [8]uint64 {
	var out [8]uint64
	for i := range out {
		out[i] = key[i] ^
			tab[0][byte(in[i&7]>>56)] ^
			tab[1][byte(in[(i-1)&7]>>48)] ^
			tab[2][byte(in[(i-2)&7]>>40)] ^
			tab[3][byte(in[(i-3)&7]>>32)] ^
			tab[4][byte(in[(i-4)&7]>>24)] ^
			tab[5][byte(in[(i-5)&7]>>16)] ^
			tab[6][byte(in[(i-6)&7]>>8)] ^
			tab[7][byte(in[(i-7)&7])]
	}
	return out
}
