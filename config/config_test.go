package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"OBJTOOL_ENV_PATH", "OBJTOOL_OUT_DIR", "OBJTOOL_WORKERS", "OBJTOOL_ATOMIC", "OBJTOOL_LOG_LEVEL"}

// clearEnv unsets all objtool variables for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.OutDir)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Atomic)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Values(t *testing.T) {
	clearEnv(t)
	t.Setenv("OBJTOOL_OUT_DIR", "/tmp/meshes")
	t.Setenv("OBJTOOL_WORKERS", "3")
	t.Setenv("OBJTOOL_ATOMIC", "true")
	t.Setenv("OBJTOOL_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, &Config{OutDir: "/tmp/meshes", Workers: 3, Atomic: true, LogLevel: slog.LevelDebug}, cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		key, value, want string
	}{
		{"OBJTOOL_WORKERS", "many", "invalid OBJTOOL_WORKERS"},
		{"OBJTOOL_WORKERS", "0", "must be at least 1"},
		{"OBJTOOL_ATOMIC", "maybe", "invalid OBJTOOL_ATOMIC"},
		{"OBJTOOL_LOG_LEVEL", "loud", "invalid OBJTOOL_LOG_LEVEL"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	prev, hadPrev := os.LookupEnv("OBJTOOL_WORKERS")

	t.Run("load", func(t *testing.T) {
		clearEnv(t)
		envPath := filepath.Join(t.TempDir(), "objtool.env")
		require.NoError(t, os.WriteFile(envPath, []byte("OBJTOOL_WORKERS=2\nOBJTOOL_OUT_DIR=exports\n"), 0o644))
		t.Setenv("OBJTOOL_ENV_PATH", envPath)
		t.Setenv("OBJTOOL_OUT_DIR", "from-env")
		// godotenv sets OBJTOOL_WORKERS with os.Setenv; register it for restore
		t.Setenv("OBJTOOL_WORKERS", "")
		require.NoError(t, os.Unsetenv("OBJTOOL_WORKERS"))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "from-env", cfg.OutDir, "environment wins over the .env file")
	})

	got, hasNow := os.LookupEnv("OBJTOOL_WORKERS")
	assert.Equal(t, hadPrev, hasNow, "OBJTOOL_WORKERS from the .env file must not outlive the test")
	assert.Equal(t, prev, got)
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OBJTOOL_ENV_PATH", filepath.Join(t.TempDir(), "absent.env"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
