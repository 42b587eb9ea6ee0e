package utils

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeVertices = "v -1 -1 -1\nv 1 -1 -1\nv 1 1 -1\nv -1 1 -1\nv -1 -1 1\nv 1 -1 1\nv 1 1 1\nv -1 1 1\n"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadFragment(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		data []byte
	}{
		{"verts.txt", []byte(cubeVertices)},
		{"verts.txt.zst", zstdBytes(t, cubeVertices)},
		{"verts.txt.gz", gzipBytes(t, cubeVertices)},
		{"VERTS.GZ", gzipBytes(t, cubeVertices)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadFragment(writeFile(t, dir, tc.name, tc.data))
			require.NoError(t, err)
			assert.Equal(t, cubeVertices, got)
		})
	}
}

func TestReadFragment_Empty(t *testing.T) {
	for _, p := range []string{"", "-"} {
		got, err := ReadFragment(p)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestReadFragment_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFragment(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = ReadFragment(writeFile(t, dir, "bad.zst", []byte("not zstd at all")))
	assert.ErrorContains(t, err, "failed to decompress fragment")

	_, err = ReadFragment(writeFile(t, dir, "bad.gz", []byte("not gzip either")))
	assert.ErrorContains(t, err, "failed to decompress fragment")
}
