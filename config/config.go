package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultEnvPath = ".env"

// Config holds objtool settings read from the environment.
type Config struct {
	// OutDir is the base directory for relative output paths. Empty means
	// relative to the working directory (CLI) or the manifest (batch).
	OutDir string
	// Workers bounds the number of batch jobs written concurrently.
	Workers int
	// Atomic selects temp-file-then-rename writes.
	Atomic   bool
	LogLevel slog.Level
}

// Load reads the .env file named by OBJTOOL_ENV_PATH (default ".env") into the
// environment, then builds a Config from it. A missing .env file is skipped.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	envPath := os.Getenv("OBJTOOL_ENV_PATH")
	if envPath == "" {
		envPath = defaultEnvPath
	}
	if err := godotenv.Load(envPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		slog.Debug("Skipping .env file", "path", envPath)
	}
	return FromEnv()
}

// FromEnv builds a Config from OBJTOOL_* environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		OutDir:   os.Getenv("OBJTOOL_OUT_DIR"),
		Workers:  runtime.NumCPU(),
		LogLevel: slog.LevelInfo,
	}

	if v := os.Getenv("OBJTOOL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OBJTOOL_WORKERS %q: %w", v, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("invalid OBJTOOL_WORKERS %q: must be at least 1", v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("OBJTOOL_ATOMIC"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OBJTOOL_ATOMIC %q: %w", v, err)
		}
		cfg.Atomic = b
	}

	if v := os.Getenv("OBJTOOL_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid OBJTOOL_LOG_LEVEL %q: %w", v, err)
		}
	}

	return cfg, nil
}
