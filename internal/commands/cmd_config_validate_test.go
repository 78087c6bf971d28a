package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/printer"
)

func TestValidateConfig_Valid(t *testing.T) {
	result := validateConfig(testConfig(t), "")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateConfig_FieldErrorsAndWarnings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.SpawnProbability = 2
	cfg.TUI.Theme = "neon"
	cfg.Simulation.Enabled = false

	result := validateConfig(cfg, "")

	assert.False(t, result.Valid)
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"simulation.spawn_probability", "tui.theme"}, fields)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Simulation", result.Warnings[0].Category)
}

func TestConfigValidateCmd_JSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &ConfigValidateCmd{flags: &Flags{Config: testConfig(t)}, format: "json"}

	require.NoError(t, cmd.run(context.Background(), &cli.Command{Writer: &buf}))

	var got validationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.Valid)
}

func TestOutputValidationText(t *testing.T) {
	var buf bytes.Buffer
	p := printer.New(&buf)

	require.NoError(t, outputValidationText(p, validationResult{Valid: true}))
	assert.Contains(t, buf.String(), "Configuration is valid")

	buf.Reset()
	err := outputValidationText(p, validationResult{
		Errors: []validationError{{Field: "export.format", Message: `unknown format "xml"`}},
	})
	require.Error(t, err)
	assert.Contains(t, buf.String(), `export.format: unknown format "xml"`)
	assert.Contains(t, buf.String(), "1 error(s) found")
}
