package obj

import (
	"io"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

const filePerm = 0o644

// WriteFile creates or truncates path and writes header, vertices, normals,
// texcoords and faces to it in that order, with nothing in between.
// Parent directories are not created.
func WriteFile(header, vertices, normals, texcoords, faces, path string) error {
	return SaveFragments(Fragments{
		Header:    header,
		Vertices:  vertices,
		Normals:   normals,
		TexCoords: texcoords,
		Faces:     faces,
	}, path)
}

// SaveFragments writes f to path. A failed open returns *OpenError; a failed
// write or close returns *WriteError. Writing stops at the first failure.
func SaveFragments(f Fragments, path string) error {
	fp, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	return saveTo(fp, f, path)
}

// saveTo writes f to w and closes it. A write error takes precedence over the
// close error.
func saveTo(w io.WriteCloser, f Fragments, path string) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Stage: StageClose, Err: cerr}
		}
	}()
	_, err = f.writeParts(w, path)
	return err
}

// SaveFragmentsAtomic writes f to a temporary file next to path and renames it
// over path once fully written and synced. On failure path is left untouched
// and the temporary file is removed.
func SaveFragmentsAtomic(f Fragments, path string) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	if _, err = f.writeParts(tmp, path); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return &WriteError{Path: path, Stage: StageSync, Err: err}
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return &WriteError{Path: path, Stage: StageClose, Err: err}
	}
	// CreateTemp uses 0600
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return &WriteError{Path: path, Stage: StageCommit, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &WriteError{Path: path, Stage: StageCommit, Err: err}
	}
	return nil
}

// DigestFile returns the xxHash64 of the file at path. For a file written by
// SaveFragments it equals Fragments.Digest.
func DigestFile(path string) (uint64, error) {
	fp, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fp.Close()
	d := xxhash.New()
	if _, err := io.Copy(d, fp); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}
