package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 64, cfg.ChunkBytes)
	assert.Equal(t, "", cfg.FeedSchedule)
}

func TestLoadReadsYamlFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "debug: true\nchunk_bytes: 128\nfeed_schedule: \"10 25 rest\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 128, cfg.ChunkBytes)
	assert.Equal(t, "10 25 rest", cfg.FeedSchedule)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_bytes: 128\n"), 0644))

	t.Setenv("MLBPARSER_CHUNK_BYTES", "256")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.ChunkBytes)
}

func TestWriteDefaultCreatesLoadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, WriteDefault(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.ChunkBytes)
}

func TestWriteDefaultLeavesExistingFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_bytes: 999\n"), 0644))

	require.NoError(t, WriteDefault(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 999, cfg.ChunkBytes)
}

func TestDefaultConfigPathEndsInMlbparserConfigYaml(t *testing.T) {
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.True(t, filepath.Base(path) == "config.yaml")
	assert.Equal(t, "mlbparser", filepath.Base(filepath.Dir(path)))
}
