package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/packrun/internal/build"
)

const summaryLabel = "Summary"

// RunDashboard shows the interactive dashboard until the user quits. cancel
// stops the build; it is called when the user presses c or ctrl+c while the
// build is running. The remaining events are drained before returning.
func RunDashboard(jobs []build.Job, events <-chan build.Event, cancel context.CancelFunc, theme *DashboardTheme, opts ...tea.ProgramOption) (*Board, error) {
	if theme == nil {
		theme = DefaultDashboardTheme()
	}
	m := newModel(jobs, events, cancel, theme.Compile())
	finalModel, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := finalModel.(model); ok {
		m = fm
	}
	if !m.board.Done {
		cancel()
		for evt := range events {
			m.board.Apply(evt)
		}
	}
	return m.board, err
}

type model struct {
	board       *Board
	events      <-chan build.Event
	cancel      context.CancelFunc
	theme       *CompiledTheme
	selected    int  // index into board.Jobs; len(board.Jobs) selects the summary
	follow      bool // track the active job until the user navigates
	canceling   bool
	viewport    viewport.Model
	ready       bool
	width       int // terminal width
	height      int // terminal height
	listWidth   int // width allocated to job list
	detailWidth int // width allocated to detail pane
}

func newModel(jobs []build.Job, events <-chan build.Event, cancel context.CancelFunc, theme *CompiledTheme) model {
	vp := viewport.New(0, 0)
	vp.SetContent("Waiting for output")
	return model{
		board:    NewBoard(jobs),
		events:   events,
		cancel:   cancel,
		theme:    theme,
		follow:   true,
		viewport: vp,
	}
}

type tickMsg struct{}
type eventMsg build.Event
type closedMsg struct{}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.listenEvents(), m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/8, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(evt)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.board.Done {
				return m, tea.Quit
			}
		case "c", "ctrl+c":
			if m.board.Done {
				if msg.String() == "ctrl+c" {
					return m, tea.Quit
				}
				return m, nil
			}
			if !m.canceling {
				m.canceling = true
				m.cancel()
			}
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.follow = false
				m.refreshViewport()
			}
		case "down", "j":
			if m.selected < len(m.board.Jobs) {
				m.selected++
				m.follow = false
				m.refreshViewport()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listWidth = m.calculateListWidth()
		if m.listWidth > m.width/2 {
			m.listWidth = m.width / 2
		}
		m.detailWidth = m.width - m.listWidth - 1
		m.viewport.Width = max(m.detailWidth-6, 10) // box padding + border
		m.viewport.Height = max(msg.Height-12, 3)   // title, header, status bar, borders
		m.ready = true
		m.refreshViewport()
	case tickMsg:
		if m.board.Done {
			return m, nil
		}
		return m, m.tick()
	case eventMsg:
		idx := m.board.Apply(build.Event(msg))
		if m.follow {
			switch {
			case m.board.Done:
				m.selected = len(m.board.Jobs)
			case idx != build.RunLevel:
				m.selected = idx
			}
		}
		if idx == m.selected || m.selected == len(m.board.Jobs) || m.board.Done {
			m.refreshViewport()
		}
		return m, m.listenEvents()
	case closedMsg:
		return m, nil
	}
	return m, nil
}

func (m *model) calculateListWidth() int {
	maxWidth := runewidth.StringWidth(summaryLabel)
	for _, view := range m.board.Jobs {
		if w := runewidth.StringWidth(view.Job.Output); w > maxWidth {
			maxWidth = w
		}
	}
	// select marker, icon, duration, box padding and border
	return maxWidth + 18
}

func (m *model) refreshViewport() {
	var lines []string
	if m.selected >= 0 && m.selected < len(m.board.Jobs) {
		lines = m.board.Jobs[m.selected].Output()
	} else {
		lines = m.board.RunLines()
	}
	if len(lines) == 0 {
		m.viewport.SetContent("Waiting for output")
		return
	}
	m.viewport.SetContent(m.theme.lines.styleLines(lines))
	if m.follow || !m.board.Done {
		m.viewport.GotoBottom()
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading dashboard..."
	}

	titleText := strings.TrimSpace(m.theme.TitleIcon + " " + m.theme.TitleText)
	title := m.theme.TitleStyle.Width(m.width).Render(titleText)

	contentHeight := max(m.height-8, 5)

	listPanel := m.theme.TaskListStyle.
		Width(m.listWidth).
		Render(fitHeight(m.renderList(), contentHeight))

	header := summaryLabel
	if m.selected < len(m.board.Jobs) {
		view := m.board.Jobs[m.selected]
		header = fmt.Sprintf("%s (%s)", view.Job.Name(), view.Job.Source)
	}
	header = runewidth.Truncate(header, max(m.detailWidth-8, 10), "…")
	detailContent := m.theme.DetailHeaderStyle.Render(header) + "\n\n" + m.viewport.View()
	detailPanel := m.theme.DetailBoxStyle.
		Width(m.detailWidth).
		Render(fitHeight(detailContent, contentHeight))

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
	status := m.theme.StatusBarStyle.Render(m.statusText())

	return lipgloss.JoinVertical(lipgloss.Left, title, panels, status)
}

func (m model) statusText() string {
	switch {
	case m.board.Done:
		return m.board.Message + " • ↑/↓ navigate • q quit"
	case m.canceling:
		return "Canceling..."
	default:
		return "↑/↓ navigate • c cancel"
	}
}

func (m model) renderList() string {
	nameWidth := max(m.listWidth-18, 8)
	var lines []string
	for i, view := range m.board.Jobs {
		name := runewidth.FillRight(runewidth.Truncate(view.Job.Output, nameWidth, "…"), nameWidth)
		duration := ""
		if view.Status != JobPending && !view.StartedAt.IsZero() {
			duration = " " + formatDuration(view.Duration())
		}
		if i == m.selected {
			content := fmt.Sprintf("%s %s %s%s", m.theme.Icons.Select, m.rawStatusIcon(view), name, duration)
			lines = append(lines, m.theme.SelectedStyle.Render(content))
			continue
		}
		content := fmt.Sprintf("%s %s%s", m.statusIcon(view), name, m.theme.DurationStyle.Render(duration))
		lines = append(lines, m.theme.UnselectedStyle.Render("  "+content))
	}
	lines = append(lines, "")
	if m.selected == len(m.board.Jobs) {
		lines = append(lines, m.theme.SelectedStyle.Render(m.theme.Icons.Select+" "+summaryLabel))
	} else {
		lines = append(lines, m.theme.UnselectedStyle.Render("  "+summaryLabel))
	}
	return strings.Join(lines, "\n")
}

func (m model) statusIcon(view *JobView) string {
	switch view.Status {
	case JobPending:
		return m.theme.PendingIconStyle.Render(m.theme.Icons.Pending)
	case JobRunning:
		return m.theme.RunningIconStyle.Render(m.spinnerFrame(view))
	case JobSuccess:
		return m.theme.SuccessIconStyle.Render(m.theme.Icons.Success)
	case JobFailed:
		return m.theme.ErrorIconStyle.Render(m.theme.Icons.Error)
	case JobCanceled:
		return m.theme.PendingIconStyle.Render(m.theme.Icons.Canceled)
	default:
		return "?"
	}
}

// rawStatusIcon returns the icon without styling (for use in selected rows).
func (m model) rawStatusIcon(view *JobView) string {
	switch view.Status {
	case JobPending:
		return m.theme.Icons.Pending
	case JobRunning:
		return m.spinnerFrame(view)
	case JobSuccess:
		return m.theme.Icons.Success
	case JobFailed:
		return m.theme.Icons.Error
	case JobCanceled:
		return m.theme.Icons.Canceled
	default:
		return "?"
	}
}

func (m model) spinnerFrame(view *JobView) string {
	frames := m.theme.SpinnerFrames
	interval := time.Duration(m.theme.SpinnerInterval) * time.Millisecond
	return frames[int(view.Duration()/interval)%len(frames)]
}

// fitHeight pads or truncates s to exactly n lines.
func fitHeight(s string, n int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines[:n], "\n")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	// Show tenths of a second (e.g., 1.2s not 1.34s)
	return fmt.Sprintf("%.1fs", d.Round(100*time.Millisecond).Seconds())
}
