package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/taskmon/internal/core/styles"
	"github.com/hay-kot/taskmon/pkg/tuitest"
)

func TestPrinter_Levels(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %s", "config.yaml")
	p.Warnf("careful")
	p.Errorf("%d error(s)", 2)
	p.Printf("plain")

	out := tuitest.StripANSI(buf.String())
	assert.Contains(t, out, styles.IconCheck+" saved config.yaml")
	assert.Contains(t, out, styles.IconNotifyWarning+" careful")
	assert.Contains(t, out, styles.IconNotifyError+" 2 error(s)")
	assert.Contains(t, out, "\nplain")
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Section("Summary")

	assert.Equal(t, "Summary\n───────", tuitest.StripANSI(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	assert.Same(t, p, Ctx(NewContext(context.Background(), p)))
	assert.NotNil(t, Ctx(context.Background()))
}

func TestPrinter_Items(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.CheckItem("data dir", "/data")
	p.WarnItem("TERM", "")
	p.FailItem("tui.theme", "unknown")

	out := tuitest.StripANSI(buf.String())
	assert.Contains(t, out, "  "+styles.IconCheck+" data dir /data")
	assert.Contains(t, out, "  "+styles.IconNotifyWarning+" TERM\n")
	assert.Contains(t, out, "  "+styles.IconNotifyError+" tui.theme unknown")
}
