package doctor

import (
	"context"
	"os"

	"golang.org/x/term"
)

// Package-level variables to allow test overrides.
var (
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	getenv           = os.Getenv
)

// TerminalCheck verifies the environment can host the interactive panel.
type TerminalCheck struct{}

// NewTerminalCheck creates a new terminal check.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if stdoutIsTerminal() {
		result.Items = append(result.Items, pass("stdout", "terminal"))
	} else {
		result.Items = append(result.Items, warn("stdout", "not a terminal (the panel needs one)"))
	}

	switch t := getenv("TERM"); t {
	case "":
		result.Items = append(result.Items, warn("TERM", "not set"))
	case "dumb":
		result.Items = append(result.Items, warn("TERM", "dumb terminals cannot draw the panel"))
	default:
		result.Items = append(result.Items, pass("TERM", t))
	}

	if getenv("NO_COLOR") != "" {
		result.Items = append(result.Items, warn("NO_COLOR", "set, segment states are shown without color"))
	}

	return result
}
