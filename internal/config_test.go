package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novabuf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
app_name: bench
storage:
  workdir: `+dir+`
buffer_pool:
  frames: 16
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bench", cfg.AppName)
	assert.Equal(t, dir, cfg.Storage.Workdir)
	assert.Equal(t, 16, cfg.BufferPool.Frames)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	pool := cfg.NewPool()
	assert.Equal(t, 16, pool.Capacity())

	f, err := cfg.OpenFile("heap")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "heap"), f.Name())
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("NOVABUF_BUFFER_POOL_FRAMES", "7")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "novabuf", cfg.AppName)
	assert.Equal(t, "./data", cfg.Storage.Workdir)
	assert.Equal(t, 7, cfg.BufferPool.Frames)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, "buffer_pool:\n  frames: 0\n")
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "buffer_pool.frames")
}

func TestSlogLevel_Unknown(t *testing.T) {
	cfg := &NovaBufConfig{}
	cfg.Log.Level = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
