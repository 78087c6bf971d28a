package tracker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/eventbus"
)

// ConfigWatcher reloads the config file when it changes and applies the
// monitored applications and simulation flag to a Runner. The parent
// directory is watched so editors that replace the file on save are seen.
type ConfigWatcher struct {
	path        string
	dataDir     string
	runner      *Runner
	bus         *eventbus.EventBus
	debounceDur time.Duration
	log         zerolog.Logger
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path, dataDir string, runner *Runner, bus *eventbus.EventBus, log zerolog.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:        filepath.Clean(path),
		dataDir:     dataDir,
		runner:      runner,
		bus:         bus,
		debounceDur: 200 * time.Millisecond,
		log:         log,
	}
}

// Run watches until ctx is cancelled.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	w.log.Debug().Str("path", w.path).Msg("watching config file")

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.log.Debug().Str("op", event.Op.String()).Msg("config file event")

			// Debounce: wait for writes to settle
			if debounce == nil {
				debounce = time.NewTimer(w.debounceDur)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.debounceDur)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("config watcher error")
		}
	}
}

// reload loads the config file and applies it. A file that fails to load
// or validate keeps the current settings.
func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.path, w.dataDir)
	if err != nil {
		w.log.Warn().Err(err).Msg("config reload failed, keeping current settings")
		return
	}

	w.runner.SetMonitoredApplications(cfg.Applications)
	w.runner.SetSimulationEnabled(cfg.Simulation.Enabled)

	w.log.Info().Strs("applications", cfg.EnabledApplications()).Bool("simulation", cfg.Simulation.Enabled).Msg("config reloaded")
	w.bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Config: cfg})
}
