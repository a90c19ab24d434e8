package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

// streakFile is the on-disk shape of the streak state
type streakFile struct {
	Streak        int    `json:"streak"`
	GoalDays      int    `json:"goal_days"`
	LastGoalStart string `json:"last_goal_start"`
}

// JSONStore keeps the streak and the journal in two JSON files inside dir
type JSONStore struct {
	dir   string
	clock utils.Clock
}

func NewJSONStore(dir string, clock utils.Clock) *JSONStore {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &JSONStore{dir: dir, clock: clock}
}

func (s *JSONStore) streakPath() string  { return filepath.Join(s.dir, constants.StreakFileName) }
func (s *JSONStore) journalPath() string { return filepath.Join(s.dir, constants.JournalFileName) }

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.streakPath()); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.dir)
	}

	if err := s.SaveStreak(models.DefaultStreakState(s.clock.Now())); err != nil {
		return err
	}
	if _, err := os.Stat(s.journalPath()); os.IsNotExist(err) {
		return s.SaveEntries([]models.JournalEntry{})
	}
	return nil
}

// Load only makes sure the data directory exists. Missing files are a
// normal first-run condition and load as defaults.
func (s *JSONStore) Load() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.dir
}

func (s *JSONStore) Backend() string {
	return constants.BackendJSON
}

func (s *JSONStore) LoadStreak() (models.StreakState, error) {
	now := s.clock.Now()
	path := s.streakPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No streak file, starting fresh", "path", path)
			return models.DefaultStreakState(now), nil
		}
		return models.DefaultStreakState(now), apperrors.Load(path, err)
	}

	var raw streakFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.DefaultStreakState(now), apperrors.Load(path, err)
	}

	start, err := utils.ParseTimestamp(raw.LastGoalStart, now.Location())
	if err != nil {
		return models.DefaultStreakState(now), apperrors.Load(path, err)
	}

	state := models.StreakState{
		Streak:        raw.Streak,
		GoalDays:      raw.GoalDays,
		LastGoalStart: start,
	}
	if !state.Valid() {
		return models.DefaultStreakState(now), apperrors.Load(path, fmt.Errorf("invalid streak state %+v", raw))
	}
	return state, nil
}

func (s *JSONStore) SaveStreak(state models.StreakState) error {
	raw := streakFile{
		Streak:        state.Streak,
		GoalDays:      state.GoalDays,
		LastGoalStart: utils.FormatTimestamp(state.LastGoalStart.In(s.clock.Now().Location())),
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize streak: %w", err)
	}
	if err := writeFileAtomic(s.streakPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write streak: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadEntries() ([]models.JournalEntry, error) {
	path := s.journalPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.JournalEntry{}, nil
		}
		return []models.JournalEntry{}, apperrors.Load(path, err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []models.JournalEntry{}, apperrors.Load(path, err)
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return entries, nil
}

func (s *JSONStore) SaveEntries(entries []models.JournalEntry) error {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize journal: %w", err)
	}
	if err := writeFileAtomic(s.journalPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}
