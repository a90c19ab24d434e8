package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateTimer:
		content = m.countdown.View()
	case constants.StateJournal:
		content = docStyle.Render(m.entries.View())
	case constants.StateViewEntry:
		content = docStyle.Render(m.viewport.View())
	case constants.StateAddEntry, constants.StateEditEntry:
		content = m.viewEntryForm()
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	var status string
	if m.warning != "" {
		status = warningStyle.Render(m.warning)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Timer", "Journal"}
	active := m.state
	if !m.isMainState() {
		active = constants.StateJournal
		if m.state == constants.StateConfirmation {
			active = m.previousState
		}
	}
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewEntryForm() string {
	heading := "New journal entry"
	if m.state == constants.StateEditEntry {
		heading = "Edit journal entry"
	}
	parts := []string{entryTitleStyle.Render(heading), "", m.form.View()}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmation() string {
	if m.form == nil {
		return ""
	}
	if m.width == 0 || m.height < 4 {
		return docStyle.Render(m.form.View())
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		m.form.View(),
	)
}

// renderEntry formats a journal entry for the detail view
func renderEntry(e models.JournalEntry, width int) string {
	when := e.Timestamp
	if t, err := utils.ParseTimestamp(e.Timestamp, nil); err == nil {
		when = t.Format(constants.DisplayTimeFormat)
	}

	var b strings.Builder
	b.WriteString(entryTitleStyle.Render("✦ " + e.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(e.Type.Label() + " · " + when))
	b.WriteString("\n\n")

	desc := e.Description
	if desc == "" {
		desc = mutedStyle.Render("No description.")
	} else if width > 0 {
		desc = lipgloss.NewStyle().Width(width).Render(desc)
	}
	b.WriteString(desc)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("esc back · e edit"))
	return b.String()
}
