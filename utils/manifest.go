package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/objtool/obj"
)

// FragmentSource is inline text or a fragment file; never both.
// A zero FragmentSource is the empty fragment.
type FragmentSource struct {
	Text *string `yaml:"text"`
	File string  `yaml:"file"`
}

// Job describes one .obj file to assemble.
type Job struct {
	Output    string         `yaml:"output"`
	Header    FragmentSource `yaml:"header"`
	Vertices  FragmentSource `yaml:"vertices"`
	Normals   FragmentSource `yaml:"normals"`
	TexCoords FragmentSource `yaml:"texcoords"`
	Faces     FragmentSource `yaml:"faces"`
}

// Manifest is a batch of assembly jobs.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`

	// Dir is the base for relative paths; set by LoadManifest.
	Dir string `yaml:"-"`
}

func (j *Job) sources() [5]FragmentSource {
	return [5]FragmentSource{j.Header, j.Vertices, j.Normals, j.TexCoords, j.Faces}
}

// LoadManifest reads and validates a YAML manifest. Relative paths in it are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest YAML: %w", err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest has no jobs")
	}
	seen := make(map[string]int, len(m.Jobs))
	for i, j := range m.Jobs {
		if j.Output == "" {
			return nil, fmt.Errorf("job at index %d has no output", i)
		}
		out := filepath.Clean(j.Output)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("job at index %d writes %q, already written by job %d", i, j.Output, prev)
		}
		seen[out] = i
		for k, src := range j.sources() {
			if src.Text != nil && src.File != "" {
				return nil, fmt.Errorf("job %q: %s has both text and file", j.Output, obj.FragmentOrder[k])
			}
		}
	}
	return &m, nil
}

// resolve joins a relative path onto base.
func resolve(base, path string) string {
	if base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// OutputPath returns where job j is written. Relative outputs go under outDir
// when set, otherwise under the manifest directory.
func (m *Manifest) OutputPath(j Job, outDir string) string {
	if outDir != "" {
		return resolve(outDir, j.Output)
	}
	return resolve(m.Dir, j.Output)
}

// OutputPaths resolves the output of every job, in manifest order, and fails
// when two jobs resolve to the same file.
func (m *Manifest) OutputPaths(outDir string) ([]string, error) {
	outs := make([]string, len(m.Jobs))
	seen := make(map[string]int, len(m.Jobs))
	for i, j := range m.Jobs {
		out := m.OutputPath(j, outDir)
		abs, err := filepath.Abs(out)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", j.Output, err)
		}
		if prev, ok := seen[abs]; ok {
			return nil, fmt.Errorf("job at index %d writes %s, already written by job %d", i, abs, prev)
		}
		seen[abs] = i
		outs[i] = out
	}
	return outs, nil
}

// Fragments loads the fragment text of job j.
func (m *Manifest) Fragments(j Job) (obj.Fragments, error) {
	var f obj.Fragments
	for k, src := range j.sources() {
		name := obj.FragmentOrder[k]
		var text string
		switch {
		case src.Text != nil:
			text = *src.Text
		case src.File != "":
			var err error
			text, err = ReadFragment(resolve(m.Dir, src.File))
			if err != nil {
				return f, fmt.Errorf("%s: %w", name, err)
			}
		}
		if err := f.Set(string(name), text); err != nil {
			return f, err
		}
	}
	return f, nil
}
