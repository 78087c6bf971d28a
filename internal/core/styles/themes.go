package styles

import (
	"image/color"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultTheme is the name of the theme used when none is configured.
const DefaultTheme = "tokyo-night"

// Palette is the set of semantic colors a theme provides.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color

	Bar BarPalette
}

// BarPalette colors the segmented progress bar. Filled segments show work
// done, critical segments the time spent past the estimate, and the marker
// where the estimate ends.
type BarPalette struct {
	Filled   color.Color
	Critical color.Color
	Empty    color.Color
	Marker   color.Color
}

func hex(s string) color.Color { return lipgloss.Color(s) }

var themes = map[string]Palette{
	"tokyo-night": {
		Primary: hex("#7aa2f7"), Secondary: hex("#7dcfff"),
		Foreground: hex("#c0caf5"), Muted: hex("#565f89"),
		Background: hex("#1a1b26"), Surface: hex("#3b4261"),
		Success: hex("#9ece6a"), Warning: hex("#e0af68"), Error: hex("#f7768e"),
		Bar: BarPalette{
			Filled: hex("#7aa2f7"), Critical: hex("#f7768e"),
			Empty: hex("#3b4261"), Marker: hex("#e0af68"),
		},
	},
	"gruvbox": {
		Primary: hex("#83a598"), Secondary: hex("#8ec07c"),
		Foreground: hex("#ebdbb2"), Muted: hex("#665c54"),
		Background: hex("#282828"), Surface: hex("#3c3836"),
		Success: hex("#b8bb26"), Warning: hex("#fabd2f"), Error: hex("#fb4934"),
		Bar: BarPalette{
			Filled: hex("#b8bb26"), Critical: hex("#fb4934"),
			Empty: hex("#504945"), Marker: hex("#fe8019"),
		},
	},
	"catppuccin": {
		Primary: hex("#89b4fa"), Secondary: hex("#94e2d5"),
		Foreground: hex("#cdd6f4"), Muted: hex("#6c7086"),
		Background: hex("#1e1e2e"), Surface: hex("#313244"),
		Success: hex("#a6e3a1"), Warning: hex("#f9e2af"), Error: hex("#f38ba8"),
		Bar: BarPalette{
			Filled: hex("#89b4fa"), Critical: hex("#f38ba8"),
			Empty: hex("#45475a"), Marker: hex("#fab387"), // peach
		},
	},
	"kanagawa": {
		Primary: hex("#7E9CD8"), Secondary: hex("#7FB4CA"),
		Foreground: hex("#DCD7BA"), Muted: hex("#727169"),
		Background: hex("#1F1F28"), Surface: hex("#2A2A37"),
		Success: hex("#76946A"), Warning: hex("#DCA561"), Error: hex("#C34043"),
		Bar: BarPalette{
			Filled: hex("#98BB6C"), Critical: hex("#E82424"), // springGreen, samuraiRed
			Empty: hex("#363646"), Marker: hex("#FFA066"),
		},
	},
	"onedark": {
		Primary: hex("#61afef"), Secondary: hex("#56b6c2"),
		Foreground: hex("#abb2bf"), Muted: hex("#5c6370"),
		Background: hex("#282c34"), Surface: hex("#3e4452"),
		Success: hex("#98c379"), Warning: hex("#e5c07b"), Error: hex("#e06c75"),
		Bar: BarPalette{
			Filled: hex("#61afef"), Critical: hex("#e06c75"),
			Empty: hex("#3e4452"), Marker: hex("#d19a66"),
		},
	},
}

// ThemeNames returns the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetPalette returns the palette registered under name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	h := cc.Hex()
	return &h
}

// GlamourStyle returns the markdown style used to render task reports.
// Group headings take the primary color and report tables the foreground,
// so a rendered report reads like the panel it was exported from.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	// "# Task Report" title, "## <group>" sections.
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = colorHexPtr(ColorSurface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.Table.Color = fg
	cfg.Emph.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Code.Color = colorHexPtr(ColorSecondary)

	return cfg
}
