package commands

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/internal/printer"
)

type InitCmd struct {
	flags *Flags
	yes   bool
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a taskmon configuration with an interactive wizard",
		UsageText: "taskmon init [options]",
		Description: `Writes a config file with the monitored applications, simulator and theme
of your choice.

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

// initChoices are the answers collected by the wizard.
type initChoices struct {
	Applications []string
	Simulation   bool
	Theme        string
	ExportFormat string
}

func defaultChoices() initChoices {
	cfg := config.DefaultConfig()
	return initChoices{
		Applications: cfg.EnabledApplications(),
		Simulation:   cfg.Simulation.Enabled,
		Theme:        cfg.TUI.Theme,
		ExportFormat: cfg.Export.Format,
	}
}

// apply builds a config from the defaults and the answers. Every known
// application is kept in the file so it can be re-enabled later.
func (ch initChoices) apply(dataDir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	cfg.Simulation.Enabled = ch.Simulation
	cfg.TUI.Theme = ch.Theme
	cfg.Export.Format = ch.ExportFormat

	for i, app := range cfg.Applications {
		cfg.Applications[i].Enabled = slices.Contains(ch.Applications, app.Name)
	}
	return cfg
}

func (cmd *InitCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	path := cmd.flags.ConfigPath

	if configExists(path) && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	choices := defaultChoices()
	if !cmd.yes {
		if err := promptChoices(&choices); err != nil {
			return err
		}
	}

	if configExists(path) {
		backupPath, err := backupConfig(path)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		p.Successf("Backed up config to: %s", backupPath)
	}

	cfg := choices.apply(cmd.flags.DataDir)
	if err := cfg.Save(path); err != nil {
		return err
	}
	p.Successf("Created config: %s", path)

	if len(choices.Applications) == 0 {
		p.Warnf("No applications enabled; simulated tasks will never be auto-verified")
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Review %s", path)
	p.Printf("  2. Run 'taskmon config validate' to check it")
	p.Printf("  3. Run 'taskmon' to open the task panel")
	return nil
}

func promptChoices(ch *initChoices) error {
	names := make([]string, 0, len(config.DefaultApplications()))
	for _, app := range config.DefaultApplications() {
		names = append(names, app.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Monitored applications").
				Description("The simulator spawns tasks for these and auto-verifies them when opened").
				Options(huh.NewOptions(names...)...).
				Value(&ch.Applications),
			huh.NewConfirm().
				Title("Enable the activity simulator?").
				Description("Spawns and advances system tasks in the background").
				Value(&ch.Simulation),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(styles.ThemeNames()...)...).
				Value(&ch.Theme),
			huh.NewSelect[string]().
				Title("Export format").
				Description("Format used by the panel's export key").
				Options(huh.NewOptions(config.ExportFormats...)...).
				Value(&ch.ExportFormat),
		),
	)
	return form.Run()
}

// backupConfig copies the config at path to path.bak, replacing any
// previous backup.
func backupConfig(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	backupPath := path + ".bak"
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

func configExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
