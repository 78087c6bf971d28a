package doctor

import (
	"context"
	"fmt"
	"os"
)

// Dir is a directory taskmon writes into.
type Dir struct {
	Label string
	Path  string
}

// DirsCheck verifies that the data and report directories exist and are
// directories. Missing directories are fixable: they are created on demand.
type DirsCheck struct {
	dirs    []Dir
	autofix bool
}

// NewDirsCheck creates a directory check. With autofix, missing directories
// are created.
func NewDirsCheck(dirs []Dir, autofix bool) *DirsCheck {
	return &DirsCheck{dirs: dirs, autofix: autofix}
}

func (c *DirsCheck) Name() string {
	return "Directories"
}

func (c *DirsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, dir := range c.dirs {
		info, err := os.Stat(dir.Path)
		switch {
		case os.IsNotExist(err):
			result.Items = append(result.Items, c.missing(dir))
		case err != nil:
			result.Items = append(result.Items, fail(dir.Label, fmt.Sprintf("inaccessible: %v", err)))
		case !info.IsDir():
			result.Items = append(result.Items, fail(dir.Label, dir.Path+" is not a directory"))
		default:
			result.Items = append(result.Items, pass(dir.Label, dir.Path))
		}
	}

	return result
}

func (c *DirsCheck) missing(dir Dir) CheckItem {
	if !c.autofix {
		item := warn(dir.Label, dir.Path+" does not exist (created on first write)")
		item.Fixable = true
		return item
	}

	if err := os.MkdirAll(dir.Path, 0o755); err != nil {
		return fail(dir.Label, fmt.Sprintf("create %s: %v", dir.Path, err))
	}
	return pass(dir.Label, "created "+dir.Path)
}
