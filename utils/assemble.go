package utils

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voxelsplace/objtool/obj"
)

// SaveFunc writes assembled fragments to a path.
type SaveFunc func(f obj.Fragments, path string) error

// Saver returns obj.SaveFragmentsAtomic when atomic is set, else obj.SaveFragments.
func Saver(atomic bool) SaveFunc {
	if atomic {
		return obj.SaveFragmentsAtomic
	}
	return obj.SaveFragments
}

// RunAssembleOBJ reads five fragment files and writes them to outPath as one
// .obj file. An empty or "-" fragment path contributes nothing.
func RunAssembleOBJ(headerPath, vPath, vnPath, vtPath, fPath, outPath string) error {
	return runAssemble(obj.SaveFragments, [5]string{headerPath, vPath, vnPath, vtPath, fPath}, outPath)
}

// RunAssembleOBJAtomic is RunAssembleOBJ using temp-file-then-rename writes.
func RunAssembleOBJAtomic(headerPath, vPath, vnPath, vtPath, fPath, outPath string) error {
	return runAssemble(obj.SaveFragmentsAtomic, [5]string{headerPath, vPath, vnPath, vtPath, fPath}, outPath)
}

func runAssemble(save SaveFunc, paths [5]string, outPath string) error {
	f, err := readFragments(paths)
	if err != nil {
		return err
	}
	if err := save(f, outPath); err != nil {
		return fmt.Errorf("failed to save OBJ: %w", err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("Assembled OBJ", "path", outPath, "bytes", f.Len(), "xxh64", fmt.Sprintf("%016x", f.Digest()))
	}
	fmt.Printf(".obj saved (%d bytes)\n", f.Len())
	return nil
}

func readFragments(paths [5]string) (obj.Fragments, error) {
	var f obj.Fragments
	for i, name := range obj.FragmentOrder {
		text, err := ReadFragment(paths[i])
		if err != nil {
			return f, fmt.Errorf("%s: %w", name, err)
		}
		if err := f.Set(string(name), text); err != nil {
			return f, err
		}
	}
	return f, nil
}
