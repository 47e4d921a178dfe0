package dashboard

import (
	"github.com/charmbracelet/lipgloss"
)

// DashboardTheme holds all visual styling for the dashboard TUI.
type DashboardTheme struct {
	// Colors
	Colors DashboardColors `yaml:"colors"`

	// Icons for status indicators
	Icons DashboardIcons `yaml:"icons"`

	// Title bar
	Title DashboardTitleStyle `yaml:"title"`

	// Spinner configuration
	Spinner DashboardSpinnerConfig `yaml:"spinner"`
}

// DashboardColors defines the color palette for the dashboard.
// An empty color renders without color.
type DashboardColors struct {
	Primary   string `yaml:"primary"`   // Main accent (title, selected, borders)
	Success   string `yaml:"success"`   // Success state (checkmarks)
	Error     string `yaml:"error"`     // Error state (X marks)
	Warning   string `yaml:"warning"`   // Running/in-progress state
	Muted     string `yaml:"muted"`     // Secondary text, pending items
	Text      string `yaml:"text"`      // Normal text
	Border    string `yaml:"border"`    // Border color
	Highlight string `yaml:"highlight"` // Selected item background
}

// DashboardIcons defines the icons used in the dashboard.
type DashboardIcons struct {
	Pending  string `yaml:"pending"`
	Success  string `yaml:"success"`
	Error    string `yaml:"error"`
	Canceled string `yaml:"canceled"`
	Select   string `yaml:"select"` // Selected item marker
}

// DashboardTitleStyle defines the title bar appearance.
type DashboardTitleStyle struct {
	Text string `yaml:"text"`
	Icon string `yaml:"icon"`
}

// DashboardSpinnerConfig defines spinner animation settings.
type DashboardSpinnerConfig struct {
	Frames   string `yaml:"frames"`   // Space-separated spinner frames
	Interval int    `yaml:"interval"` // Milliseconds between frames
}

// CompiledTheme holds pre-built lipgloss styles from a DashboardTheme.
type CompiledTheme struct {
	TitleStyle        lipgloss.Style
	TaskListStyle     lipgloss.Style
	SelectedStyle     lipgloss.Style
	UnselectedStyle   lipgloss.Style
	DetailBoxStyle    lipgloss.Style
	DetailHeaderStyle lipgloss.Style
	StatusBarStyle    lipgloss.Style
	SuccessIconStyle  lipgloss.Style
	ErrorIconStyle    lipgloss.Style
	RunningIconStyle  lipgloss.Style
	PendingIconStyle  lipgloss.Style
	DurationStyle     lipgloss.Style

	Icons DashboardIcons

	TitleText string
	TitleIcon string

	SpinnerFrames   []string
	SpinnerInterval int

	lines *FormatterStyles
}

// DefaultDashboardTheme returns the default dashboard theme configuration.
func DefaultDashboardTheme() *DashboardTheme {
	return &DashboardTheme{
		Colors: DashboardColors{
			Primary:   "#7D56F4", // Purple
			Success:   "#04B575", // Green
			Error:     "#FF5F56", // Red
			Warning:   "#FFBD2E", // Yellow/Orange
			Muted:     "#626262", // Gray
			Text:      "#CCCCCC", // Light gray
			Border:    "#444444", // Dark gray
			Highlight: "#7D56F4", // Purple (same as primary)
		},
		Icons: DashboardIcons{
			Pending:  "\u25cb", // ○
			Success:  "\u2713", // ✓
			Error:    "\u2717", // ✗
			Canceled: "\u2298", // ⊘
			Select:   "\u25b6", // ▶
		},
		Title: DashboardTitleStyle{
			Text: "packrun",
			Icon: "\u2692", // ⚒
		},
		Spinner: DashboardSpinnerConfig{
			Frames:   "\u280b \u2819 \u2838 \u2834 \u2826 \u2807", // ⠋ ⠙ ⠸ ⠴ ⠦ ⠇
			Interval: 300,
		},
	}
}

// Monochrome returns a copy of t with every color removed.
func (t *DashboardTheme) Monochrome() *DashboardTheme {
	mono := *t
	mono.Colors = DashboardColors{}
	return &mono
}

// Compile builds lipgloss styles from the theme configuration.
func (t *DashboardTheme) Compile() *CompiledTheme {
	ct := &CompiledTheme{}

	colorPrimary := lipgloss.Color(t.Colors.Primary)
	colorSuccess := lipgloss.Color(t.Colors.Success)
	colorError := lipgloss.Color(t.Colors.Error)
	colorWarning := lipgloss.Color(t.Colors.Warning)
	colorMuted := lipgloss.Color(t.Colors.Muted)
	colorText := lipgloss.Color(t.Colors.Text)
	colorBorder := lipgloss.Color(t.Colors.Border)
	colorHighlight := lipgloss.Color(t.Colors.Highlight)

	onAccent := lipgloss.Color("#FAFAFA")
	if t.Colors.Primary == "" {
		onAccent = lipgloss.Color("")
	}

	ct.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(onAccent).
		Background(colorPrimary).
		Padding(0, 1)

	ct.TaskListStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)

	ct.SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(onAccent).
		Background(colorHighlight).
		Padding(0, 1)

	ct.UnselectedStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Padding(0, 1)

	ct.DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	ct.DetailHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(onAccent).
		Background(colorHighlight).
		Padding(0, 1)

	ct.StatusBarStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	ct.SuccessIconStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	ct.ErrorIconStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	ct.RunningIconStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	ct.PendingIconStyle = lipgloss.NewStyle().Foreground(colorMuted)
	ct.DurationStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	ct.Icons = t.Icons
	ct.TitleText = t.Title.Text
	ct.TitleIcon = t.Title.Icon

	ct.SpinnerFrames = parseSpinnerFrames(t.Spinner.Frames)
	ct.SpinnerInterval = t.Spinner.Interval
	if ct.SpinnerInterval <= 0 {
		ct.SpinnerInterval = 300
	}

	ct.lines = &FormatterStyles{
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	}

	return ct
}

// parseSpinnerFrames splits space-separated spinner characters.
func parseSpinnerFrames(s string) []string {
	var frames []string
	for _, r := range s {
		if r != ' ' {
			frames = append(frames, string(r))
		}
	}
	if len(frames) == 0 {
		return []string{"\u280b", "\u2819", "\u2838", "\u2834", "\u2826", "\u2807"}
	}
	return frames
}
