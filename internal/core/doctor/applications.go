package doctor

import (
	"context"

	"github.com/hay-kot/taskmon/internal/core/config"
)

// ApplicationsCheck reports each monitored application and whether the
// simulator will produce tasks for it.
type ApplicationsCheck struct {
	apps       []config.Application
	simulation bool
}

// NewApplicationsCheck creates a monitored applications check.
func NewApplicationsCheck(apps []config.Application, simulation bool) *ApplicationsCheck {
	return &ApplicationsCheck{apps: apps, simulation: simulation}
}

func (c *ApplicationsCheck) Name() string {
	return "Applications"
}

func (c *ApplicationsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.simulation {
		result.Items = append(result.Items, pass("simulation", "enabled"))
	} else {
		result.Items = append(result.Items, warn("simulation", "disabled, only manual tasks will appear"))
	}

	if len(config.EnabledNames(c.apps)) == 0 {
		result.Items = append(result.Items, warn("applications", "none enabled"))
	}

	for _, app := range c.apps {
		if app.Enabled {
			result.Items = append(result.Items, pass(app.Name, ""))
		} else {
			result.Items = append(result.Items, pass(app.Name, "disabled"))
		}
	}

	return result
}
