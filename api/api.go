package api

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/voxelsplace/objtool/obj"
)

// AssembleOBJ returns the .obj file contents for the given fragments, in
// header, vertices, normals, texcoords, faces order.
func AssembleOBJ(header, vertices, normals, texcoords, faces []byte) []byte {
	f := obj.Fragments{
		Header:    string(header),
		Vertices:  string(vertices),
		Normals:   string(normals),
		TexCoords: string(texcoords),
		Faces:     string(faces),
	}
	return f.Bytes()
}

// AssembleOBJFromMap assembles fragments keyed by name ("header", "vertices",
// "normals", "texcoords", "faces"). Missing keys are empty fragments; unknown
// keys are an error.
func AssembleOBJFromMap(fragments map[string][]byte) ([]byte, error) {
	var f obj.Fragments
	for name, text := range fragments {
		if err := f.Set(name, string(text)); err != nil {
			return nil, fmt.Errorf("failed to assemble OBJ: %w", err)
		}
	}
	return f.Bytes(), nil
}

// DigestOBJ returns the xxHash64 of the assembled file, as printed by the CLI.
func DigestOBJ(objBytes []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(objBytes))
}

// end of file
