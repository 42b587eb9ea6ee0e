package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ReadFragment returns the text of a fragment file. Files ending in .zst or
// .gz are decompressed; anything else is returned verbatim.
// An empty path or "-" is the empty fragment.
func ReadFragment(path string) (string, error) {
	if path == "" || path == "-" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read fragment: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		data, err = zstdDecompress(data)
	case ".gz":
		data, err = gzipDecompress(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decompress fragment %s: %w", path, err)
	}
	return string(data), nil
}

func zstdDecompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(b, nil)
}

func gzipDecompress(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
