package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
}

func TestValidateDeep_ProbabilityOutOfRange(t *testing.T) {
	cfg := validConfig(t)
	cfg.Simulation.SpawnProbability = 1.5
	cfg.Simulation.OpenProbability = -0.1

	err := cfg.ValidateDeep("")

	names := fieldNames(t, err)
	assert.Contains(t, names, "simulation.spawn_probability")
	assert.Contains(t, names, "simulation.open_probability")
	assert.NotContains(t, names, "simulation.drift_probability")
}

func TestValidateDeep_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.TUI.Theme = "solarized-neon"

	err := cfg.ValidateDeep("")

	assert.Contains(t, fieldNames(t, err), "tui.theme")
}

func TestValidateDeep_UnknownExportFormat(t *testing.T) {
	cfg := validConfig(t)
	cfg.Export.Format = "xlsx"

	err := cfg.ValidateDeep("")

	assert.Equal(t, []string{"export.format"}, fieldNames(t, err))
}

func TestValidateDeep_EmptyTaskType(t *testing.T) {
	cfg := validConfig(t)
	cfg.TaskTypes = []string{"Rendering", ""}

	err := cfg.ValidateDeep("")

	assert.Contains(t, fieldNames(t, err), "task_types[1]")
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

	cfg := validConfig(t)
	cfg.DataDir = tmpFile

	err := cfg.ValidateDeep("")

	assert.Contains(t, fieldNames(t, err), "data_dir")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	assert.Contains(t, fieldNames(t, err), "config_file")
}

func TestValidateDeep_StructuralErrorShortCircuits(t *testing.T) {
	cfg := validConfig(t)
	cfg.Applications = []Application{{Name: "Figma"}, {Name: "Figma"}}

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate application")
}

func TestWarnings(t *testing.T) {
	t.Run("defaults have none", func(t *testing.T) {
		assert.Empty(t, validConfig(t).Warnings())
	})

	t.Run("no enabled applications", func(t *testing.T) {
		cfg := validConfig(t)
		for i := range cfg.Applications {
			cfg.Applications[i].Enabled = false
		}

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Applications", warnings[0].Category)
	})

	t.Run("simulation disabled", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Simulation.Enabled = false
		cfg.Simulation.SpawnProbability = 0

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Simulation", warnings[0].Category)
	})
}
