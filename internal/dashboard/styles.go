package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatterStyles colors individual output lines in the detail pane.
type FormatterStyles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
}

// styleLine picks a style from the line's leading marker. Tool output
// without a marker passes through unchanged.
func (s *FormatterStyles) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "✓"), strings.HasPrefix(line, "  ✓"):
		return s.Success.Render(line)
	case strings.HasPrefix(line, "✗"), strings.HasPrefix(line, "  ✗"):
		return s.Error.Render(line)
	case strings.HasPrefix(line, "["):
		return s.Header.Render(line)
	case strings.HasPrefix(line, "Found: "), strings.HasPrefix(line, "---"):
		return s.Muted.Render(line)
	default:
		return line
	}
}

// styleLines styles each line and joins them.
func (s *FormatterStyles) styleLines(lines []string) string {
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = s.styleLine(line)
	}
	return strings.Join(styled, "\n")
}
