//go:build !(js && wasm)

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/voxelsplace/objtool/config"
	"github.com/voxelsplace/objtool/obj"
	"github.com/voxelsplace/objtool/utils"
)

func usage() {
	fmt.Println("Usage: objtool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  assemble header.txt verts.txt normals.txt texcoords.txt faces.txt output.obj")
	fmt.Println("                                  (concatenate fragments into .obj; '-' = empty, .zst/.gz decompressed)")
	fmt.Println("  batch manifest.yaml             (assemble every job of a YAML manifest)")
	fmt.Println("  digest input.obj                (print xxh64 of a file)")
	fmt.Println("Environment: OBJTOOL_OUT_DIR, OBJTOOL_WORKERS, OBJTOOL_ATOMIC, OBJTOOL_LOG_LEVEL, OBJTOOL_ENV_PATH")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	switch os.Args[1] {
	case "assemble":
		if len(os.Args) != 8 {
			usage()
			os.Exit(1)
		}
		run := utils.RunAssembleOBJ
		if cfg.Atomic {
			run = utils.RunAssembleOBJAtomic
		}
		out := os.Args[7]
		if cfg.OutDir != "" && !filepath.IsAbs(out) {
			out = filepath.Join(cfg.OutDir, out)
		}
		if err := run(os.Args[2], os.Args[3], os.Args[4], os.Args[5], os.Args[6], out); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "batch":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := runBatch(os.Args[2], cfg); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "digest":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		sum, err := obj.DigestFile(os.Args[2])
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("%016x  %s\n", sum, os.Args[2])
		return
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}

func runBatch(manifest string, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := utils.RunAssembleManifest(ctx, manifest, *cfg)
	for _, r := range results {
		if r.Err == nil {
			fmt.Printf("%s saved (%d bytes, xxh64 %016x)\n", r.Output, r.Bytes, r.Digest)
		}
	}
	return err
}
