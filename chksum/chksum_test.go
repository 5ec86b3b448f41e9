package chksum_test

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bjaus/snakeoil/chksum"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var snakeoilDigests = map[string]string{
	"md5":      "46c86b9e43fad217487cf0883e811af5",
	"sha1":     "f59a5708306bb5c4257e16d0d50e6624d1dddee8",
	"rmd160":   "80f19bde0dc2cd0866e4020ccc8b158b2f85041c",
	"sha256":   "21f600d107999f9ec1b70b2155fb106224690ef1b5f61a7f6a1d4647e57301f4",
	"sha512":   "a405d196164d3881a23a7b873ee6e642750cae866cde41555f4461cfde816b677668b523d9f22e11fb8b15035bdede2cecd1112691fb2fe49a8b90fbf0437a2e",
	"sha3_256": "e243f3f9ca89a58ce6348d1b286c97bd7886e1a4acdce2852c489f0cdf7a0498",
	"sha3_512": "43e9cf37685949364c0c76b26cb35ab85895f16ed80e79cc33bba953f9637cb290c805dab7eeb2e7ec3645991926f77c180931aad14015d5ee1cef8e625ae772",
	"blake2b":  "4488ab8b85d710262fc5323a77d18fa9e5c3ff128c060a18cff93a5d72284af3d210cdb75d13d75501f57a1e737c74c7c5c6fb3aa433037a92103089d048ec0c",
	"blake2s":  "e51563a2a2f0e510d7b919946542b7d11bc1cfcf063e6427c989d2e487d2102e",
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestHandlers(t *testing.T) {
	t.Parallel()
	for name, want := range snakeoilDigests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h, err := chksum.Get(name)
			require.NoError(t, err)
			assert.Equal(t, len(want), h.HexSize)

			hh := h.New()
			_, err = hh.Write([]byte("snakeoil\n"))
			require.NoError(t, err)
			v := new(big.Int).SetBytes(hh.Sum(nil))
			assert.Equal(t, want, h.Long2Str(v))

			back, err := h.Str2Long(want)
			require.NoError(t, err)
			assert.Zero(t, v.Cmp(back))
		})
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()
	_, err := chksum.Get("crc32")
	require.ErrorIs(t, err, chksum.ErrUnknownChksum)
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{
		"blake2b", "blake2s", "md5", "rmd160", "sha1", "sha256",
		"sha3_256", "sha3_512", "sha512", "size", "whirlpool",
	}, chksum.Names())
}

func TestLong2StrPads(t *testing.T) {
	t.Parallel()
	h, err := chksum.Get("md5")
	require.NoError(t, err)
	assert.Equal(t, "000000000000000000000000000000ff", h.Long2Str(big.NewInt(255)))

	size, err := chksum.Get("size")
	require.NoError(t, err)
	assert.Equal(t, "1234", size.Long2Str(big.NewInt(1234)))
	v, err := size.Str2Long("1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), v.Int64())

	_, err = h.Str2Long("xyz")
	require.ErrorIs(t, err, chksum.ErrInvalidValue)
}

func TestFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, []byte("snakeoil\n"))

	for _, parallel := range []bool{true, false} {
		got, err := chksum.File(context.Background(), path, []string{"md5", "sha256", "whirlpool", "size"}, chksum.Parallel(parallel))
		require.NoError(t, err)
		require.Len(t, got, 4)

		md5, _ := chksum.Get("md5")
		sha256, _ := chksum.Get("sha256")
		assert.Equal(t, snakeoilDigests["md5"], md5.Long2Str(got["md5"]))
		assert.Equal(t, snakeoilDigests["sha256"], sha256.Long2Str(got["sha256"]))
		assert.Equal(t, int64(9), got["size"].Int64())
	}
}

func TestFileLarge(t *testing.T) {
	t.Parallel()
	path := writeFile(t, make([]byte, 300000))

	got, err := chksum.File(context.Background(), path, []string{"md5", "sha256"})
	require.NoError(t, err)
	md5, _ := chksum.Get("md5")
	sha256, _ := chksum.Get("sha256")
	assert.Equal(t, "4a21de7a58fb8ecb9a1b1f08a3068269", md5.Long2Str(got["md5"]))
	assert.Equal(t, "886715e4051e827f4fe215df3053af3f85ad0d352db2c829c7487af6d78efe30", sha256.Long2Str(got["sha256"]))
}

func TestFileErrors(t *testing.T) {
	t.Parallel()
	path := writeFile(t, []byte("x"))

	_, err := chksum.File(context.Background(), path, []string{"md5", "crc32"})
	require.ErrorIs(t, err, chksum.ErrUnknownChksum)

	missing := filepath.Join(t.TempDir(), "nope")
	_, err = chksum.File(context.Background(), missing, []string{"md5"})
	require.ErrorIs(t, err, os.ErrNotExist)

	got, err := chksum.File(context.Background(), missing, []string{"size"})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got["size"].Int64())
}
