package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/packrun/internal/build"
)

func newTestModel(t *testing.T, canceled *int) model {
	t.Helper()
	m := newModel(testJobs(), make(chan build.Event), func() { *canceled++ }, DefaultDashboardTheme().Compile())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_FollowsActiveJob_Until_UserNavigates(t *testing.T) {
	t.Parallel()
	var canceled int
	m := newTestModel(t, &canceled)
	events := scriptedRun()

	m, _ = step(t, m, eventMsg(events[1]))
	assert.Equal(t, 0, m.selected)
	m, _ = step(t, m, eventMsg(events[5]))
	assert.Equal(t, 1, m.selected)

	m, _ = step(t, m, key("k"))
	assert.Equal(t, 0, m.selected)
	assert.False(t, m.follow)

	m, _ = step(t, m, eventMsg(events[6]))
	assert.Equal(t, 0, m.selected, "selection stays put after navigation")
}

func TestModel_SelectsSummary_When_RunFinishes(t *testing.T) {
	t.Parallel()
	var canceled int
	m := newTestModel(t, &canceled)

	for _, evt := range scriptedRun() {
		m, _ = step(t, m, eventMsg(evt))
	}

	require.True(t, m.board.Done)
	assert.Equal(t, len(m.board.Jobs), m.selected)
	view := m.View()
	assert.Contains(t, view, "Summary")
	assert.Contains(t, view, "1 of 2 build(s) failed: Magnifier")
	assert.Contains(t, view, "Build finished in 1s")
}

func TestModel_CancelKey_CancelsOnce_When_Running(t *testing.T) {
	t.Parallel()
	var canceled int
	m := newTestModel(t, &canceled)
	m, _ = step(t, m, eventMsg(scriptedRun()[1]))

	m, cmd := step(t, m, key("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, canceled)
	assert.True(t, m.canceling)
	assert.Contains(t, m.View(), "Canceling...")

	m, _ = step(t, m, key("ctrl+c"))
	assert.Equal(t, 1, canceled)

	_, cmd = step(t, m, key("q"))
	assert.Nil(t, cmd, "q does nothing while the build runs")
}

func TestModel_QuitKeys_When_Done(t *testing.T) {
	t.Parallel()
	var canceled int
	m := newTestModel(t, &canceled)
	for _, evt := range scriptedRun() {
		m, _ = step(t, m, eventMsg(evt))
	}

	_, cmd := step(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = step(t, m, key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Zero(t, canceled)
}

func TestModel_NavigationStaysInBounds(t *testing.T) {
	t.Parallel()
	var canceled int
	m := newTestModel(t, &canceled)

	m, _ = step(t, m, key("up"))
	assert.Equal(t, 0, m.selected)
	for i := 0; i < 5; i++ {
		m, _ = step(t, m, key("j"))
	}
	assert.Equal(t, len(m.board.Jobs), m.selected)
}

func TestModel_View_ShowsLoadingBeforeSize(t *testing.T) {
	t.Parallel()
	m := newModel(testJobs(), nil, func() {}, DefaultDashboardTheme().Compile())
	assert.Equal(t, "Loading dashboard...", m.View())
}

func TestModel_ListenEvents_ReportsClosedChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan build.Event)
	close(ch)
	m := newModel(testJobs(), ch, func() {}, DefaultDashboardTheme().Compile())

	assert.Equal(t, closedMsg{}, m.listenEvents()())
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "250ms", formatDuration(250_000_000))
	assert.Equal(t, "1.3s", formatDuration(1_260_000_000))
}

func TestFitHeight(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a\n\n", fitHeight("a", 3))
	assert.Equal(t, "a\nb", fitHeight("a\nb\nc", 2))
}
