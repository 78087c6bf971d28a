// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported semantic colors.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Header and tab bar.
	TitleStyle        lipgloss.Style
	StatLabelStyle    lipgloss.Style
	StatValueStyle    lipgloss.Style
	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style
	HelpStyle         lipgloss.Style

	// Task rows.
	RowStyle         lipgloss.Style
	RowSelectedStyle lipgloss.Style
	TaskNameStyle    lipgloss.Style
	TaskUnreadStyle  lipgloss.Style
	TaskMetaStyle    lipgloss.Style
	TaskOverdueStyle lipgloss.Style
	SourceBadgeStyle lipgloss.Style

	// Segmented progress bar.
	SegmentFilledStyle   lipgloss.Style
	SegmentCriticalStyle lipgloss.Style
	SegmentEmptyStyle    lipgloss.Style
	SegmentMarkerStyle   lipgloss.Style

	// Status badges.
	StatusActiveStyle    lipgloss.Style
	StatusPausedStyle    lipgloss.Style
	StatusAwaitingStyle  lipgloss.Style
	StatusCompletedStyle lipgloss.Style

	// Modal and form.
	ModalStyle            lipgloss.Style
	ModalTitleStyle       lipgloss.Style
	ModalHelpStyle        lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style

	// Toasts.
	ToastStyle        lipgloss.Style
	ToastTitleStyle   lipgloss.Style
	ToastMessageStyle lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// ColorPool is used for deterministic color hashing of application names.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	StatLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatValueStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Underline(true)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	RowStyle = lipgloss.NewStyle().PaddingLeft(2)
	RowSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	TaskNameStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TaskUnreadStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TaskMetaStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TaskOverdueStyle = lipgloss.NewStyle().Foreground(ColorError)
	SourceBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)

	SegmentFilledStyle = lipgloss.NewStyle().Foreground(p.Bar.Filled)
	SegmentCriticalStyle = lipgloss.NewStyle().Foreground(p.Bar.Critical)
	SegmentEmptyStyle = lipgloss.NewStyle().Foreground(p.Bar.Empty)
	SegmentMarkerStyle = lipgloss.NewStyle().Foreground(p.Bar.Marker).Bold(true)

	StatusActiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusPausedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusAwaitingStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusCompletedStyle = lipgloss.NewStyle().Foreground(ColorSecondary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1).
		Width(40)
	ToastTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	ToastMessageStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ToastInfoStyle = ToastStyle.BorderForeground(ColorPrimary)
	ToastWarningStyle = ToastStyle.BorderForeground(ColorWarning)
	ToastErrorStyle = ToastStyle.BorderForeground(ColorError)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// UseTheme activates the named theme. Unknown names leave the current theme
// in place and report false.
func UseTheme(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
