package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardTheme_Compile_FillsSpinnerDefaults(t *testing.T) {
	t.Parallel()
	theme := DefaultDashboardTheme()
	theme.Spinner = DashboardSpinnerConfig{}

	ct := theme.Compile()

	assert.Len(t, ct.SpinnerFrames, 6)
	assert.Equal(t, 300, ct.SpinnerInterval)
	assert.Equal(t, "packrun", ct.TitleText)
}

func TestDashboardTheme_Monochrome_DropsColorsOnly(t *testing.T) {
	t.Parallel()
	theme := DefaultDashboardTheme()

	mono := theme.Monochrome()

	assert.Equal(t, DashboardColors{}, mono.Colors)
	assert.Equal(t, theme.Icons, mono.Icons)
	assert.NotEmpty(t, theme.Colors.Primary, "original is unchanged")
}

func TestParseSpinnerFrames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", "c"}, parseSpinnerFrames("a b  c"))
	assert.Len(t, parseSpinnerFrames("   "), 6)
}

func TestFormatterStyles_StyleLine_KeepsText(t *testing.T) {
	t.Parallel()
	styles := DefaultDashboardTheme().Monochrome().Compile().lines

	for _, line := range []string{"✓ Built Overlay", "✗ Magnifier failed", "[1/3] Building", "Found: x.py", "plain tool output"} {
		assert.Contains(t, styles.styleLine(line), line)
	}
	assert.Equal(t, "plain tool output", styles.styleLine("plain tool output"))
}
