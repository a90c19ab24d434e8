package countdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/streak"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	completedStyle = timeStyle.
			BorderForeground(lipgloss.Color("42")).
			Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)
)

// TickMsg is delivered once a second while the program runs
type TickMsg time.Time

// Tick schedules the next TickMsg one second after it is called
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type ToggleModeMsg struct{}

type FailMsg struct{}

type RewindMsg struct{}

// ResolveMsg reopens the completion prompt after it was dismissed
type ResolveMsg struct{}

type KeyMap struct {
	Toggle  key.Binding
	Fail    key.Binding
	Rewind  key.Binding
	Resolve key.Binding
}

func DefaultKeyMap(debugControls bool) KeyMap {
	k := KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle timer"),
		),
		Fail: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "I couldn't do it"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "simulate day pass"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue"),
		),
	}
	k.Rewind.SetEnabled(debugControls)
	return k
}

type Model struct {
	Keys   KeyMap
	tick   streak.Tick
	width  int
	height int
}

func New(debugControls bool) Model {
	return Model{Keys: DefaultKeyMap(debugControls)}
}

// SetTick stores the latest engine result for rendering
func (m *Model) SetTick(t streak.Tick) {
	m.tick = t
	m.Keys.Resolve.SetEnabled(t.Phase == streak.Completed)
}

func (m Model) Tick() streak.Tick {
	return m.tick
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return Tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Toggle):
			return m, func() tea.Msg { return ToggleModeMsg{} }
		case key.Matches(msg, m.Keys.Fail):
			return m, func() tea.Msg { return FailMsg{} }
		case key.Matches(msg, m.Keys.Rewind):
			return m, func() tea.Msg { return RewindMsg{} }
		case key.Matches(msg, m.Keys.Resolve):
			return m, func() tea.Msg { return ResolveMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	state := m.tick.State
	header := titleStyle.Render(fmt.Sprintf("Streak: %d  ·  Goal: %d %s", state.Streak, state.GoalDays, days(state.GoalDays)))

	box := timeStyle.Render(m.tick.Display.Text)
	if m.tick.Phase == streak.Completed {
		box = completedStyle.Render(constants.CompletionTitle)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		header,
		box,
		labelStyle.Render(m.tick.Display.ModeLabel),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
