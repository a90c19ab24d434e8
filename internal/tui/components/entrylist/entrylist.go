package entrylist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

var (
	victoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	setbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type AddEntryMsg struct{}

type ViewEntryMsg struct {
	Key string
}

type EditEntryMsg struct {
	Key string
}

type DeleteEntryMsg struct {
	Key string
}

type Item struct {
	Entry models.JournalEntry
}

func (i Item) Title() string {
	style := victoryStyle
	if i.Entry.Type == models.EntrySetback {
		style = setbackStyle
	}
	return style.Render("✦ " + i.Entry.Title)
}

func (i Item) Description() string {
	when := i.Entry.Timestamp
	if t, err := utils.ParseTimestamp(i.Entry.Timestamp, nil); err == nil {
		when = t.Format(constants.DisplayTimeFormat)
	}
	return i.Entry.Type.Label() + " · " + when
}

func (i Item) FilterValue() string { return i.Entry.Title }

type KeyMap struct {
	Add    key.Binding
	View   key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.JournalEntry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.View, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.View, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(entries []models.JournalEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

func (m *Model) SetEntries(entries []models.JournalEntry) {
	m.list.SetItems(toItems(entries))
}

// Selected returns the highlighted entry
func (m Model) Selected() (models.JournalEntry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the list is capturing keys for its filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.View):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ViewEntryMsg{Key: e.Key()} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditEntryMsg{Key: e.Key()} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{Key: e.Key()} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No journal entries yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Keys returns the bindings the list reacts to, for help rendering
func (m Model) Keys() KeyMap {
	return m.keys
}
