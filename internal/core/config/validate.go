package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/taskmon/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility, probability ranges and theme names. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateSimulation(),
		c.validateTaskTypes(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("export.format", c.Export.Format, knownExportFormat),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.EnabledApplications()) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Applications",
			Message:  "no applications are enabled; simulated tasks will never be auto-verified",
		})
	}

	if !c.Simulation.Enabled {
		warnings = append(warnings, ValidationWarning{
			Category: "Simulation",
			Message:  "simulation is disabled; only manual tasks will appear",
		})
	}

	if c.Simulation.SpawnProbability == 0 && c.Simulation.Enabled {
		warnings = append(warnings, ValidationWarning{
			Category: "Simulation",
			Item:     "spawn_probability",
			Message:  "spawn probability is zero; no system tasks will be created",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory and export directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateSimulation() error {
	var errs criterio.FieldErrorsBuilder
	for field, p := range map[string]float64{
		"simulation.spawn_probability": c.Simulation.SpawnProbability,
		"simulation.drift_probability": c.Simulation.DriftProbability,
		"simulation.open_probability":  c.Simulation.OpenProbability,
	} {
		if err := probability(p); err != nil {
			errs = errs.Append(field, err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateTaskTypes() error {
	var errs criterio.FieldErrorsBuilder
	for i, name := range c.TaskTypes {
		if name == "" {
			errs = errs.Append(fmt.Sprintf("task_types[%d]", i), errors.New("task type cannot be empty"))
		}
	}
	return errs.ToError()
}

func probability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("must be between 0 and 1, got %v", p)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func knownExportFormat(name string) error {
	if !slices.Contains(ExportFormats, name) {
		return fmt.Errorf("unknown format %q (available: %v)", name, ExportFormats)
	}
	return nil
}
