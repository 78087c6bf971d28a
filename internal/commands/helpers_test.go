package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/hay-kot/taskmon/internal/core/config"
	"github.com/hay-kot/taskmon/internal/printer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

// printerCtx returns a context whose printer writes into the returned buffer.
func printerCtx() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	return printer.NewContext(context.Background(), printer.New(&buf)), &buf
}
