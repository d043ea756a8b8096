package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inEmptyDir runs the test from a directory without a .env file.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CLUSTERS_SOURCE", "THUMBNAIL_DIR", "PORT", "LOG_LEVEL", "WATCH"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Source:       ".",
		ThumbnailDir: "cluster_thumbnails/",
		Port:         "8990",
		LogLevel:     "info",
		Watch:        false,
	}, cfg)
}

func TestLoad_Environment(t *testing.T) {
	inEmptyDir(t)
	clearEnv(t)
	t.Setenv("CLUSTERS_SOURCE", "https://example.com/data")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WATCH", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/data", cfg.Source)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Watch)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := inEmptyDir(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLUSTERS_SOURCE=/srv/clusters\nPORT=7000\n"), 0644))

	// godotenv only fills unset variables.
	require.NoError(t, os.Unsetenv("CLUSTERS_SOURCE"))
	t.Cleanup(func() { os.Unsetenv("CLUSTERS_SOURCE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/clusters", cfg.Source)
	assert.Equal(t, "8990", cfg.Port, "PORT was set (empty) in the environment")
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("watch", func(t *testing.T) {
		inEmptyDir(t)
		clearEnv(t)
		t.Setenv("WATCH", "sometimes")
		_, err := Load()
		assert.ErrorContains(t, err, "WATCH")
	})

	t.Run("log level", func(t *testing.T) {
		inEmptyDir(t)
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})
}

func TestApplyLogLevel(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	require.NoError(t, Config{LogLevel: "warn"}.ApplyLogLevel())
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	err := Config{LogLevel: "loud"}.ApplyLogLevel()
	assert.ErrorContains(t, err, "log level")
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
