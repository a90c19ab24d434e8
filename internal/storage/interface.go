package storage

import "github.com/julianstephens/streakstep/internal/models"

// StreakRepository persists the singleton streak state.
//
// LoadStreak returns the default state when nothing has been saved yet. When
// the saved state is unreadable or malformed it still returns the default
// state together with an error wrapping errors.ErrLoad, so callers can carry
// on after logging it.
type StreakRepository interface {
	LoadStreak() (models.StreakState, error)
	SaveStreak(models.StreakState) error
}

// JournalRepository persists the journal as one ordered list, newest first.
// Every save replaces the whole list. A corrupt list loads as empty with an
// error wrapping errors.ErrLoad.
type JournalRepository interface {
	LoadEntries() ([]models.JournalEntry, error)
	SaveEntries([]models.JournalEntry) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	StreakRepository
	JournalRepository

	// Utils
	GetConfigPath() string
	Backend() string
}
