package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_Sorted(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestUseTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	require.True(t, UseTheme("gruvbox"))
	assert.Equal(t, themes["gruvbox"].Primary, ColorPrimary)

	assert.False(t, UseTheme("nope"))
	assert.Equal(t, themes["gruvbox"].Primary, ColorPrimary, "unknown theme keeps current")
}

func TestThemes_DefineBarColors(t *testing.T) {
	for _, name := range ThemeNames() {
		p, ok := GetPalette(name)
		require.True(t, ok)
		assert.NotNil(t, p.Bar.Filled, name)
		assert.NotNil(t, p.Bar.Critical, name)
		assert.NotNil(t, p.Bar.Empty, name)
		assert.NotNil(t, p.Bar.Marker, name)
		assert.NotEqual(t, p.Bar.Filled, p.Bar.Critical, name)
	}
}

func TestUseTheme_StylesBarSegments(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	require.True(t, UseTheme("gruvbox"))
	assert.Equal(t, themes["gruvbox"].Bar.Critical, SegmentCriticalStyle.GetForeground())
	assert.Equal(t, themes["gruvbox"].Bar.Empty, SegmentEmptyStyle.GetForeground())
}

func TestColorForString_Deterministic(t *testing.T) {
	assert.Equal(t, ColorForString("Blender"), ColorForString("Blender"))
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, *colorHexPtr(ColorForeground), *cfg.Document.Color)
}

func TestTaskIcon(t *testing.T) {
	assert.Equal(t, IconLayers, TaskIcon("layers"))
	assert.Equal(t, IconZap, TaskIcon("unknown"))
}
