package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/tui/components/countdown"
	"github.com/julianstephens/streakstep/internal/tui/components/entrylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case countdown.TickMsg:
		return m, m.handleTick()

	case streakUpdatedMsg:
		m.setWarning(msg.err)
		m.countdown.SetTick(m.engine.Now())
		return m, nil

	case entriesUpdatedMsg:
		m.setWarning(msg.err)
		m.refreshEntries()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case constants.StateConfirmation:
		return m, m.updateConfirmation(msg)
	case constants.StateAddEntry, constants.StateEditEntry:
		return m, m.updateEntryForm(msg)
	case constants.StateViewEntry:
		return m, m.updateEntryView(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.entries.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % constants.NumMainTabs)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) + constants.NumMainTabs - 1) % constants.NumMainTabs)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case countdown.ToggleModeMsg:
		m.engine.TogglePrecise()
		m.countdown.SetTick(m.engine.Now())
		return m, nil
	case countdown.FailMsg:
		engine := m.engine
		return m, m.openConfirmation(constants.ConfirmationMsg{
			Title:   "I couldn't do it",
			Message: "This resets your streak and goal to day one. Are you sure?",
			Action:  streakAction(engine.RecordFailure),
		})
	case countdown.RewindMsg:
		if !m.settings.DebugControls {
			return m, nil
		}
		return m, streakAction(m.engine.RewindOneDay)()
	case countdown.ResolveMsg:
		return m, m.openConfirmation(m.completionConfirmation())

	case entrylist.AddEntryMsg:
		return m, m.openEntryForm(nil)
	case entrylist.ViewEntryMsg:
		m.openEntryView(msg.Key)
		return m, nil
	case entrylist.EditEntryMsg:
		e, err := m.journal.Get(msg.Key)
		if err != nil {
			m.setWarning(err)
			m.refreshEntries()
			return m, nil
		}
		return m, m.openEntryForm(&e)
	case entrylist.DeleteEntryMsg:
		e, err := m.journal.Get(msg.Key)
		if err != nil {
			m.setWarning(err)
			m.refreshEntries()
			return m, nil
		}
		svc, entryKey := m.journal, msg.Key
		return m, m.openConfirmation(constants.ConfirmationMsg{
			Title:   "Delete entry",
			Message: fmt.Sprintf("Delete %q? This cannot be undone.", e.Title),
			Action:  journalAction(func() error { return svc.Delete(entryKey) }),
		})
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateTimer:
		m.countdown, cmd = m.countdown.Update(msg)
	case constants.StateJournal:
		m.entries, cmd = m.entries.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleTick recomputes the countdown and re-arms the ticker
func (m *Model) handleTick() tea.Cmd {
	cmds := []tea.Cmd{countdown.Tick()}

	t := m.engine.Now()
	m.countdown.SetTick(t)
	if t.Crossed {
		m.resolvePending = true
	}
	if m.resolvePending && m.isMainState() {
		m.resolvePending = false
		cmds = append(cmds, m.openConfirmation(m.completionConfirmation()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateConfirmation(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.cancelConfirmation()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.finishConfirmation(m.confirmForm.Confirmed))
	case huh.StateAborted:
		m.cancelConfirmation()
		return nil
	}
	return cmd
}

func (m *Model) updateEntryForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.closeEntryForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.submitEntry())
	case huh.StateAborted:
		m.closeEntryForm()
		return nil
	}
	return cmd
}

func (m *Model) updateEntryView(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
			m.state = constants.StateJournal
			return nil
		case msg.String() == "e":
			e := m.viewing
			return m.openEntryForm(&e)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}
