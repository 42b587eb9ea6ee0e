package obj

import (
	"bytes"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
)

// Stage names a step of writing an opened .obj file. Fragment stages double as the
// fragment names accepted by Set.
type Stage string

const (
	StageHeader    Stage = "header"
	StageVertices  Stage = "vertices"
	StageNormals   Stage = "normals"
	StageTexCoords Stage = "texcoords"
	StageFaces     Stage = "faces"
	StageSync      Stage = "sync"
	StageClose     Stage = "close"
	StageCommit    Stage = "commit"
)

// FragmentOrder is the order fragments are written in.
var FragmentOrder = []Stage{StageHeader, StageVertices, StageNormals, StageTexCoords, StageFaces}

// Fragments holds the pre-formatted text blocks of an .obj file.
// Content is opaque: it is written verbatim, never interpreted as a format string.
type Fragments struct {
	Header    string
	Vertices  string
	Normals   string
	TexCoords string
	Faces     string
}

type part struct {
	stage Stage
	text  string
}

func (f Fragments) parts() [5]part {
	return [5]part{
		{StageHeader, f.Header},
		{StageVertices, f.Vertices},
		{StageNormals, f.Normals},
		{StageTexCoords, f.TexCoords},
		{StageFaces, f.Faces},
	}
}

// Set assigns the fragment with the given name ("header", "vertices",
// "normals", "texcoords" or "faces").
func (f *Fragments) Set(name string, text string) error {
	switch Stage(name) {
	case StageHeader:
		f.Header = text
	case StageVertices:
		f.Vertices = text
	case StageNormals:
		f.Normals = text
	case StageTexCoords:
		f.TexCoords = text
	case StageFaces:
		f.Faces = text
	default:
		return fmt.Errorf("unknown fragment %q", name)
	}
	return nil
}

// Len returns the size in bytes of the assembled file.
func (f Fragments) Len() int {
	n := 0
	for _, p := range f.parts() {
		n += len(p.text)
	}
	return n
}

// WriteTo writes the fragments to w in file order.
func (f Fragments) WriteTo(w io.Writer) (int64, error) {
	return f.writeParts(w, "")
}

func (f Fragments) writeParts(w io.Writer, path string) (int64, error) {
	var total int64
	for _, p := range f.parts() {
		if p.text == "" {
			continue
		}
		n, err := io.WriteString(w, p.text)
		total += int64(n)
		if err != nil {
			return total, &WriteError{Path: path, Stage: p.stage, Err: err}
		}
	}
	return total, nil
}

// Bytes returns the assembled file contents.
func (f Fragments) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(f.Len())
	_, _ = f.WriteTo(&buf)
	return buf.Bytes()
}

// Digest returns the xxHash64 of the assembled file contents.
func (f Fragments) Digest() uint64 {
	d := xxhash.New()
	_, _ = f.WriteTo(d)
	return d.Sum64()
}
