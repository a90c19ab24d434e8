package entrylist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakstep/internal/models"
)

func sampleEntries() []models.JournalEntry {
	return []models.JournalEntry{
		{ID: "b2", Title: "Skipped gym", Type: models.EntrySetback, Timestamp: "2025-03-10T09:00:00.000000"},
		{Title: "Legacy win", Type: models.EntryVictory, Timestamp: "2025-03-09T08:30:00"},
	}
}

func TestItem(t *testing.T) {
	i := Item{Entry: sampleEntries()[1]}
	if !strings.Contains(i.Title(), "✦ Legacy win") {
		t.Errorf("title = %q", i.Title())
	}
	if i.Description() != "Victory · 2025-03-09 08:30" {
		t.Errorf("description = %q", i.Description())
	}
	if i.FilterValue() != "Legacy win" {
		t.Errorf("filter value = %q", i.FilterValue())
	}
}

func TestSelectionMessages(t *testing.T) {
	m := New(sampleEntries(), 80, 20)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should view the selected entry")
	}
	if got, ok := cmd().(ViewEntryMsg); !ok || got.Key != "b2" {
		t.Errorf("got %#v, want ViewEntryMsg{Key: b2}", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if got, ok := cmd().(DeleteEntryMsg); !ok || got.Key != "b2" {
		t.Errorf("got %#v, want DeleteEntryMsg", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if _, ok := cmd().(AddEntryMsg); !ok {
		t.Errorf("got %#v, want AddEntryMsg", cmd())
	}
}

func TestEmptyList(t *testing.T) {
	m := New(nil, 80, 20)
	if !strings.Contains(m.View(), "No journal entries yet") {
		t.Errorf("unexpected empty view: %q", m.View())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}); cmd != nil {
		if _, ok := cmd().(EditEntryMsg); ok {
			t.Error("edit on an empty list should not emit EditEntryMsg")
		}
	}
}

func TestLegacyEntryKey(t *testing.T) {
	m := New(sampleEntries()[1:], 80, 20)
	e, ok := m.Selected()
	if !ok {
		t.Fatal("expected a selected entry")
	}
	if e.Key() != "2025-03-09T08:30:00" {
		t.Errorf("legacy key = %q", e.Key())
	}
}
