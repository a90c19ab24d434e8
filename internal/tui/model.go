package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/journal"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/streak"
	"github.com/julianstephens/streakstep/internal/tui/components/countdown"
	"github.com/julianstephens/streakstep/internal/tui/components/entrylist"
)

// streakUpdatedMsg reports the outcome of an engine mutation
type streakUpdatedMsg struct {
	err error
}

// entriesUpdatedMsg reports the outcome of a journal mutation
type entriesUpdatedMsg struct {
	err error
}

type Model struct {
	engine        *streak.Engine
	journal       *journal.Service
	settings      models.Settings
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	countdown     countdown.Model
	entries       entrylist.Model
	viewport      viewport.Model
	form          *huh.Form
	entryForm     *EntryFormModel
	confirmForm   *ConfirmationFormModel
	pending       *constants.ConfirmationMsg
	editingKey    string
	viewing       models.JournalEntry
	// resolvePending is set when the goal was reached while a form was open
	resolvePending bool
	warning        string
	formError      string
	quitting       bool
	width          int
	height         int
}

func NewModel(engine *streak.Engine, svc *journal.Service, settings models.Settings) Model {
	m := Model{
		engine:    engine,
		journal:   svc,
		settings:  settings,
		state:     constants.StateTimer,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		countdown: countdown.New(settings.DebugControls),
		entries:   entrylist.New(nil, 0, 0),
		viewport:  viewport.New(0, 0),
	}
	m.refreshEntries()

	t := engine.Now()
	m.countdown.SetTick(t)
	if t.Crossed {
		m.openConfirmation(m.completionConfirmation())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return tea.Batch(m.countdown.Init(), m.form.Init())
	}
	return m.countdown.Init()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTimer:
		k := m.countdown.Keys
		keys = append(keys, k.Toggle, k.Fail, k.Rewind, k.Resolve)
	case constants.StateJournal:
		k := m.entries.Keys()
		keys = append(keys, k.Add, k.View, k.Edit, k.Delete)
	case constants.StateViewEntry, constants.StateAddEntry, constants.StateEditEntry, constants.StateConfirmation:
		keys = []key.Binding{m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Back}
	tk := m.countdown.Keys
	jk := m.entries.Keys()
	return [][]key.Binding{
		global,
		{tk.Toggle, tk.Fail, tk.Rewind, tk.Resolve},
		{jk.Add, jk.View, jk.Edit, jk.Delete},
	}
}

func (m Model) isMainState() bool {
	return m.state == constants.StateTimer || m.state == constants.StateJournal
}

// refreshEntries reloads the journal list from storage
func (m *Model) refreshEntries() {
	entries, err := m.journal.List()
	if err != nil {
		m.setWarning(err)
		return
	}
	m.entries.SetEntries(entries)
}

// setWarning shows err in the status line; nil clears it
func (m *Model) setWarning(err error) {
	switch {
	case err == nil:
		m.warning = ""
	case apperrors.Is(err, apperrors.ErrPersistence):
		m.warning = fmt.Sprintf("⚠ Could not save: %v", err)
	default:
		m.warning = fmt.Sprintf("⚠ %v", err)
	}
	if err != nil {
		logger.Debug("TUI warning", "error", err)
	}
}

func (m *Model) completionConfirmation() constants.ConfirmationMsg {
	engine := m.engine
	return constants.ConfirmationMsg{
		Title:   constants.CompletionTitle,
		Message: constants.CompletionMessage,
		Action:  streakAction(func() error { return engine.ResolveCompletion(true) }),
		Decline: streakAction(func() error { return engine.ResolveCompletion(false) }),
	}
}

func streakAction(op func() error) func() tea.Cmd {
	return func() tea.Cmd {
		err := op()
		return func() tea.Msg { return streakUpdatedMsg{err: err} }
	}
}

func journalAction(op func() error) func() tea.Cmd {
	return func() tea.Cmd {
		err := op()
		return func() tea.Msg { return entriesUpdatedMsg{err: err} }
	}
}

// openConfirmation shows a yes/no form and remembers where to return to
func (m *Model) openConfirmation(c constants.ConfirmationMsg) tea.Cmd {
	if m.state != constants.StateConfirmation {
		m.previousState = m.state
	}
	m.pending = &c
	m.confirmForm = &ConfirmationFormModel{}
	m.form = NewConfirmationForm(m.confirmForm, c.Title, c.Message)
	m.state = constants.StateConfirmation
	return m.form.Init()
}

// finishConfirmation runs the pending action for the given answer and
// returns to the previous view
func (m *Model) finishConfirmation(confirmed bool) tea.Cmd {
	pending := m.pending
	m.pending = nil
	m.form = nil
	m.confirmForm = nil
	m.state = m.previousState

	if pending == nil {
		return nil
	}
	if confirmed && pending.Action != nil {
		return pending.Action()
	}
	if !confirmed && pending.Decline != nil {
		return pending.Decline()
	}
	return nil
}

// cancelConfirmation closes the prompt without running anything
func (m *Model) cancelConfirmation() {
	m.pending = nil
	m.form = nil
	m.confirmForm = nil
	m.state = m.previousState
}

func (m *Model) openEntryForm(entry *models.JournalEntry) tea.Cmd {
	m.formError = ""
	if entry == nil {
		m.editingKey = ""
		m.entryForm = &EntryFormModel{Type: string(models.EntryVictory)}
		m.state = constants.StateAddEntry
	} else {
		m.editingKey = entry.Key()
		m.entryForm = &EntryFormModel{
			Title:       entry.Title,
			Type:        string(entry.Type),
			Description: entry.Description,
		}
		m.state = constants.StateEditEntry
	}
	m.form = NewEntryForm(m.entryForm)
	return m.form.Init()
}

// submitEntry hands the form values to the journal service. Validation
// errors keep the form open; anything else returns to the list.
func (m *Model) submitEntry() tea.Cmd {
	in := journal.Input{
		Title:       m.entryForm.Title,
		Type:        m.entryForm.Type,
		Description: m.entryForm.Description,
	}

	var err error
	if m.editingKey == "" {
		_, err = m.journal.Create(in)
	} else {
		_, err = m.journal.Update(m.editingKey, in)
	}

	if apperrors.Is(err, apperrors.ErrValidation) {
		m.formError = err.Error()
		m.form = NewEntryForm(m.entryForm)
		return m.form.Init()
	}

	m.closeEntryForm()
	m.setWarning(err)
	m.refreshEntries()
	return nil
}

func (m *Model) closeEntryForm() {
	m.form = nil
	m.entryForm = nil
	m.editingKey = ""
	m.formError = ""
	m.state = constants.StateJournal
}

func (m *Model) openEntryView(key string) {
	e, err := m.journal.Get(key)
	if err != nil {
		m.setWarning(err)
		m.refreshEntries()
		return
	}
	m.viewing = e
	m.viewport.SetContent(renderEntry(e, m.viewport.Width))
	m.viewport.GotoTop()
	m.state = constants.StateViewEntry
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, warning and help lines
	body := height - 4
	if body < 0 {
		body = 0
	}
	m.countdown.SetSize(width, body)

	h, v := docStyle.GetFrameSize()
	m.entries.SetSize(width-h, body-v)
	m.viewport.Width = width - h
	m.viewport.Height = body - v
	if m.state == constants.StateViewEntry {
		m.viewport.SetContent(renderEntry(m.viewing, m.viewport.Width))
	}
}
