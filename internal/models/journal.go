package models

import "fmt"

// EntryType is the kind of a journal entry
type EntryType string

const (
	EntryVictory EntryType = "victory"
	EntrySetback EntryType = "setback"
)

// EntryTypes lists the accepted entry types in display order
var EntryTypes = []EntryType{EntryVictory, EntrySetback}

// ParseEntryType converts user input into an EntryType
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryVictory, EntrySetback:
		return EntryType(s), nil
	}
	return "", fmt.Errorf("invalid entry type %q (expected victory or setback)", s)
}

// Label returns the capitalised type name shown in lists
func (t EntryType) Label() string {
	switch t {
	case EntryVictory:
		return "Victory"
	case EntrySetback:
		return "Setback"
	}
	return string(t)
}

// JournalEntry is a single victory or setback record
type JournalEntry struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Type        EntryType `json:"type"`
	Description string    `json:"description,omitempty"`
	Timestamp   string    `json:"timestamp"` // local ISO-8601, creation time
}

// Key returns the identity used to address the entry. Entries written
// before ids existed are addressed by their timestamp.
func (e JournalEntry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Timestamp
}
