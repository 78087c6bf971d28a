// Package config handles configuration loading and validation for taskmon.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Simulation      SimulationConfig   `yaml:"simulation"`
	Applications    []Application      `yaml:"applications"`
	TaskTypes       []string           `yaml:"task_types,omitempty"`
	AccrualInterval Duration           `yaml:"accrual_interval,omitempty"`
	WatchConfig     bool               `yaml:"watch_config"`
	TUI             TUIConfig          `yaml:"tui"`
	Notifications   NotificationConfig `yaml:"notifications"`
	Export          ExportConfig       `yaml:"export,omitempty"`
	DataDir         string             `yaml:"-"` // set by caller, not from config file
}

// Application is a monitored external application the simulator emulates.
type Application struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// SimulationConfig controls the activity simulator and auto-verifier.
type SimulationConfig struct {
	Enabled bool `yaml:"enabled"`
	// Seed for the simulator's random source. Zero derives one from the clock.
	Seed             uint64   `yaml:"seed,omitempty"`
	SpawnInterval    Duration `yaml:"spawn_interval,omitempty"`
	TickerInterval   Duration `yaml:"ticker_interval,omitempty"`
	VerifyInterval   Duration `yaml:"verify_interval,omitempty"`
	SpawnProbability float64  `yaml:"spawn_probability"`
	DriftProbability float64  `yaml:"drift_probability"`
	OpenProbability  float64  `yaml:"open_probability"`
}

// TUIConfig holds interactive panel settings.
type TUIConfig struct {
	Theme        string   `yaml:"theme"`
	RefreshEvery Duration `yaml:"refresh_every,omitempty"`
}

// NotificationConfig bounds the notification history.
type NotificationConfig struct {
	History int `yaml:"history"`
}

// ExportConfig controls where reports are written from the TUI.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"` // defaults to <data-dir>/reports
	Format string `yaml:"format,omitempty"`
}

// ExportFormats lists the report encodings the TUI can export.
var ExportFormats = []string{"csv", "json", "markdown"}

// DefaultApplications are the monitored applications enabled out of the box.
func DefaultApplications() []Application {
	return []Application{
		{Name: "Photoshop", Enabled: true},
		{Name: "Blender", Enabled: true},
		{Name: "VSCode", Enabled: true},
		{Name: "Chrome", Enabled: true},
		{Name: "Figma", Enabled: true},
		{Name: "Terminal", Enabled: true},
	}
}

// DefaultTaskTypes is the vocabulary used to name simulated tasks.
func DefaultTaskTypes() []string {
	return []string{"Rendering", "Processing", "Exporting", "Analyzing", "Building", "Downloading"}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Enabled:          true,
			SpawnInterval:    Duration(3 * time.Second),
			TickerInterval:   Duration(time.Second),
			VerifyInterval:   Duration(10 * time.Second),
			SpawnProbability: 0.3,
			DriftProbability: 0.2,
			OpenProbability:  0.3,
		},
		Applications:    DefaultApplications(),
		TaskTypes:       DefaultTaskTypes(),
		AccrualInterval: Duration(time.Second),
		WatchConfig:     true,
		TUI: TUIConfig{
			Theme:        "tokyo-night",
			RefreshEvery: Duration(time.Second),
		},
		Notifications: NotificationConfig{
			History: 50,
		},
		Export: ExportConfig{
			Format: "csv",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Simulation.SpawnInterval == 0 {
		c.Simulation.SpawnInterval = defaults.Simulation.SpawnInterval
	}
	if c.Simulation.TickerInterval == 0 {
		c.Simulation.TickerInterval = defaults.Simulation.TickerInterval
	}
	if c.Simulation.VerifyInterval == 0 {
		c.Simulation.VerifyInterval = defaults.Simulation.VerifyInterval
	}
	if c.AccrualInterval == 0 {
		c.AccrualInterval = defaults.AccrualInterval
	}
	if len(c.TaskTypes) == 0 {
		c.TaskTypes = defaults.TaskTypes
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.RefreshEvery == 0 {
		c.TUI.RefreshEvery = defaults.TUI.RefreshEvery
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Notifications.History == 0 {
		c.Notifications.History = defaults.Notifications.History
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	for name, d := range map[string]Duration{
		"accrual_interval":           c.AccrualInterval,
		"simulation.spawn_interval":  c.Simulation.SpawnInterval,
		"simulation.ticker_interval": c.Simulation.TickerInterval,
		"simulation.verify_interval": c.Simulation.VerifyInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	seen := make(map[string]bool, len(c.Applications))
	for i, app := range c.Applications {
		if app.Name == "" {
			return fmt.Errorf("applications[%d]: name is required", i)
		}
		if seen[app.Name] {
			return fmt.Errorf("applications[%d]: duplicate application %q", i, app.Name)
		}
		seen[app.Name] = true
	}

	if c.Notifications.History < 0 {
		return fmt.Errorf("notifications.history cannot be negative")
	}

	return nil
}

// EnabledApplications returns the names of enabled applications in order.
func (c *Config) EnabledApplications() []string {
	return EnabledNames(c.Applications)
}

// EnabledNames returns the names of the enabled entries in apps.
func EnabledNames(apps []Application) []string {
	names := make([]string, 0, len(apps))
	for _, a := range apps {
		if a.Enabled {
			names = append(names, a.Name)
		}
	}
	return names
}

// ReportsDir returns the directory reports are exported to.
func (c *Config) ReportsDir() string {
	if c.Export.Dir != "" {
		return c.Export.Dir
	}
	return filepath.Join(c.DataDir, "reports")
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "taskmon.log")
}
