package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray margins.yaml or .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := chdir(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".margins", "analyses.json"), cfg.Store.Path)
	assert.Equal(t, int64(4<<20), cfg.Store.MaxBytes)
	assert.Equal(t, int64(5<<20), cfg.Import.MaxFileBytes)
	assert.Equal(t, 1000, cfg.Import.MaxProducts)
	assert.Equal(t, 50, cfg.Import.MaxAnalyses)
	assert.Equal(t, 2*time.Second, cfg.Import.MinInterval)
	assert.Equal(t, []float64{70, 75}, cfg.Targets)
	assert.Equal(t, 40, cfg.Render.MaxColWidth)
	assert.True(t, cfg.Render.Color)

	limits := cfg.ImportLimits()
	assert.Equal(t, cfg.Store.MaxBytes, limits.StoreBytes)
	assert.Equal(t, 4, limits.Workers)
	assert.Equal(t, "warn", cfg.LogOptions().Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdir(t)
	yaml := `
store:
  path: /tmp/analyses.json
import:
  max_products: 10
  min_interval: 500ms
targets: [60, 80, 90]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "margins.yaml"), []byte(yaml), 0o644))
	t.Setenv("MARGINS_IMPORT_MAX_PRODUCTS", "20")
	t.Setenv("MARGINS_RENDER_COLOR", "false")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/analyses.json", cfg.Store.Path)
	assert.Equal(t, 20, cfg.Import.MaxProducts, "env wins over file")
	assert.Equal(t, 500*time.Millisecond, cfg.Import.MinInterval)
	assert.Equal(t, []float64{60, 80, 90}, cfg.Targets)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Render.Color)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MARGINS_IMPORT_WORKERS=8\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MARGINS_IMPORT_WORKERS") })

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Import.Workers)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := chdir(t)
	_, err := Load(viper.New(), filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: [70, 120]\nlog:\n  level: loud\n"), 0o644))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Targets[1]")
	assert.Contains(t, err.Error(), "Level")
}

func TestValidate_LogFileRequired(t *testing.T) {
	dir := chdir(t)
	v := viper.New()
	v.Set("log.output", "file")

	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File")

	v = viper.New()
	v.Set("log.output", "both")
	v.Set("log.file", filepath.Join(dir, "margins.log"))
	_, err = Load(v, "")
	assert.NoError(t, err)
}
