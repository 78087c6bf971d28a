package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation:
  enabled: false
  seed: 42
  spawn_interval: 500ms
  spawn_probability: 1
applications:
  - name: Blender
    enabled: true
  - name: Figma
    enabled: false
tui:
  theme: gruvbox
`)

	cfg, err := Load(path, "/tmp/taskmon")
	require.NoError(t, err)

	assert.False(t, cfg.Simulation.Enabled)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulation.SpawnInterval.Std())
	assert.Equal(t, time.Second, cfg.Simulation.TickerInterval.Std(), "unset interval takes default")
	assert.Equal(t, []string{"Blender"}, cfg.EnabledApplications())
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, DefaultTaskTypes(), cfg.TaskTypes)
	assert.Equal(t, "/tmp/taskmon", cfg.DataDir)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "accrual_interval: soon\n")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_DuplicateApplication(t *testing.T) {
	path := writeConfig(t, `
applications:
  - name: Chrome
  - name: Chrome
`)

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate application")
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	dataDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dataDir
	cfg.Simulation.SpawnInterval = Duration(1500 * time.Millisecond)
	cfg.Applications = []Application{{Name: "Terminal", Enabled: true}}

	path := filepath.Join(dataDir, "nested", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, dataDir)
	require.NoError(t, err)
	assert.Equal(t, &cfg, loaded)
}

func TestReportsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "reports"), cfg.ReportsDir())

	cfg.Export.Dir = "/elsewhere"
	assert.Equal(t, "/elsewhere", cfg.ReportsDir())
}
