package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS streak (
	id              INTEGER PRIMARY KEY CHECK (id = 1),
	streak          INTEGER NOT NULL CHECK (streak >= 0),
	goal_days       INTEGER NOT NULL CHECK (goal_days >= 1),
	last_goal_start TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS journal_entries (
	position    INTEGER PRIMARY KEY,
	id          TEXT    NOT NULL DEFAULT '',
	title       TEXT    NOT NULL,
	type        TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	timestamp   TEXT    NOT NULL
);
`

// SQLiteStore keeps the streak and the journal in a single SQLite database
type SQLiteStore struct {
	path  string
	db    *sql.DB
	clock utils.Clock
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string, clock utils.Clock) *SQLiteStore {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &SQLiteStore{path: path, clock: clock}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT count(*) FROM streak").Scan(&count); err != nil {
		return fmt.Errorf("failed to read streak: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	return s.SaveStreak(models.DefaultStreakState(s.clock.Now()))
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init --backend sqlite' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	for _, table := range []string{"streak", "journal_entries"} {
		exists, err := s.tableExists(table)
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
		if !exists {
			return fmt.Errorf("database schema incomplete: missing table %s", table)
		}
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) Backend() string {
	return constants.BackendSQLite
}

// tableExists checks if a table exists in the SQLite database.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) LoadStreak() (models.StreakState, error) {
	now := s.clock.Now()
	if s.db == nil {
		return models.DefaultStreakState(now), apperrors.Load(s.path, fmt.Errorf("storage not loaded"))
	}

	var (
		streak, goalDays int
		start            string
	)
	err := s.db.QueryRow("SELECT streak, goal_days, last_goal_start FROM streak WHERE id = 1").Scan(&streak, &goalDays, &start)
	if err == sql.ErrNoRows {
		return models.DefaultStreakState(now), nil
	}
	if err != nil {
		return models.DefaultStreakState(now), apperrors.Load(s.path, err)
	}

	t, err := utils.ParseTimestamp(start, now.Location())
	if err != nil {
		return models.DefaultStreakState(now), apperrors.Load(s.path, err)
	}
	state := models.StreakState{Streak: streak, GoalDays: goalDays, LastGoalStart: t}
	if !state.Valid() {
		return models.DefaultStreakState(now), apperrors.Load(s.path, fmt.Errorf("invalid streak state %+v", state))
	}
	return state, nil
}

func (s *SQLiteStore) SaveStreak(state models.StreakState) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO streak (id, streak, goal_days, last_goal_start) VALUES (1, ?, ?, ?)",
		state.Streak, state.GoalDays, utils.FormatTimestamp(state.LastGoalStart.In(s.clock.Now().Location())),
	)
	if err != nil {
		return fmt.Errorf("failed to write streak: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadEntries() ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	if s.db == nil {
		return entries, apperrors.Load(s.path, fmt.Errorf("storage not loaded"))
	}

	rows, err := s.db.Query("SELECT id, title, type, description, timestamp FROM journal_entries ORDER BY position")
	if err != nil {
		return entries, apperrors.Load(s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.JournalEntry
		var entryType string
		if err := rows.Scan(&e.ID, &e.Title, &entryType, &e.Description, &e.Timestamp); err != nil {
			return []models.JournalEntry{}, apperrors.Load(s.path, err)
		}
		e.Type = models.EntryType(entryType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return []models.JournalEntry{}, apperrors.Load(s.path, err)
	}
	return entries, nil
}

// SaveEntries replaces the stored list in a single transaction
func (s *SQLiteStore) SaveEntries(entries []models.JournalEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM journal_entries"); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO journal_entries (position, id, title, type, description, timestamp) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.ID, e.Title, string(e.Type), e.Description, e.Timestamp); err != nil {
			return fmt.Errorf("failed to write journal entry %q: %w", e.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}
