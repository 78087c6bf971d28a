// Package printer writes styled, human-oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/taskmon/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to an underlying writer.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(prefix string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = style.Render(prefix) + " " + msg
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", lipgloss.Style{}, format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.IconNotifyInfo, styles.StatusCompletedStyle, format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.IconCheck, styles.StatusActiveStyle, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.IconNotifyWarning, styles.StatusAwaitingStyle, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.IconNotifyError, styles.TaskOverdueStyle, format, args...)
}

// Section writes a heading followed by a divider.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.w, styles.DividerStyle.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// KeyValue writes an aligned "label: value" line.
func (p *Printer) KeyValue(label string, value any) {
	_, _ = fmt.Fprintf(p.w, "  %s %v\n", styles.StatLabelStyle.Render(fmt.Sprintf("%-14s", label+":")), value)
}

// CheckItem writes an indented passing check line.
func (p *Printer) CheckItem(label, detail string) {
	p.item(styles.IconCheck, styles.StatusActiveStyle, label, detail)
}

// WarnItem writes an indented warning check line.
func (p *Printer) WarnItem(label, detail string) {
	p.item(styles.IconNotifyWarning, styles.StatusAwaitingStyle, label, detail)
}

// FailItem writes an indented failing check line.
func (p *Printer) FailItem(label, detail string) {
	p.item(styles.IconNotifyError, styles.TaskOverdueStyle, label, detail)
}

func (p *Printer) item(icon string, style lipgloss.Style, label, detail string) {
	if detail != "" {
		detail = " " + styles.StatLabelStyle.Render(detail)
	}
	_, _ = fmt.Fprintf(p.w, "  %s %s%s\n", style.Render(icon), label, detail)
}
