// Package journal manages victory and setback entries. Each operation loads
// the whole list, applies one change and writes the list back.
package journal

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

// Service is the journal store over a JournalRepository
type Service struct {
	repo  storage.JournalRepository
	clock utils.Clock
	newID func() string
}

func NewService(repo storage.JournalRepository, clock utils.Clock) *Service {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Service{repo: repo, clock: clock, newID: uuid.NewString}
}

// Input holds the raw user-supplied fields of an entry
type Input struct {
	Title       string
	Type        string
	Description string
}

func (in Input) validate() (models.JournalEntry, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.JournalEntry{}, apperrors.Validation("please enter a title")
	}
	entryType, err := models.ParseEntryType(strings.ToLower(strings.TrimSpace(in.Type)))
	if err != nil {
		return models.JournalEntry{}, apperrors.Validation("%v", err)
	}
	return models.JournalEntry{
		Title:       title,
		Type:        entryType,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

// load returns the current list. A corrupt journal is logged and treated as empty.
func (s *Service) load() ([]models.JournalEntry, error) {
	entries, err := s.repo.LoadEntries()
	if err != nil {
		if apperrors.Is(err, apperrors.ErrLoad) {
			logger.Warn("Could not load journal, starting empty", "error", err)
			return []models.JournalEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (s *Service) save(entries []models.JournalEntry) error {
	if err := s.repo.SaveEntries(entries); err != nil {
		logger.Warn("Failed to save journal", "error", err)
		return apperrors.Persistence(err)
	}
	return nil
}

// List returns all entries, newest first
func (s *Service) List() ([]models.JournalEntry, error) {
	return s.load()
}

// Create validates the input and inserts a new entry at the head of the list
func (s *Service) Create(in Input) (models.JournalEntry, error) {
	entry, err := in.validate()
	if err != nil {
		return models.JournalEntry{}, err
	}

	entries, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry.ID = s.newID()
	entry.Timestamp = utils.FormatTimestamp(s.clock.Now())

	entries = append([]models.JournalEntry{entry}, entries...)
	if err := s.save(entries); err != nil {
		return entry, err
	}
	logger.Debug("Journal entry created", "id", entry.ID, "type", entry.Type)
	return entry, nil
}

// Get returns the entry addressed by key (its id, or timestamp for legacy entries)
func (s *Service) Get(key string) (models.JournalEntry, error) {
	entries, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}
	i := indexOf(entries, key)
	if i < 0 {
		return models.JournalEntry{}, apperrors.NotFound("journal entry", key)
	}
	return entries[i], nil
}

// minPrefixLen is the shortest id prefix Find accepts
const minPrefixLen = 4

// Find resolves an exact key or a unique id prefix of at least four characters
func (s *Service) Find(keyOrPrefix string) (models.JournalEntry, error) {
	keyOrPrefix = strings.TrimSpace(keyOrPrefix)
	entries, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}
	if i := indexOf(entries, keyOrPrefix); i >= 0 {
		return entries[i], nil
	}

	if len(keyOrPrefix) >= minPrefixLen {
		var matches []models.JournalEntry
		for _, e := range entries {
			if e.ID != "" && strings.HasPrefix(e.ID, keyOrPrefix) {
				matches = append(matches, e)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return models.JournalEntry{}, apperrors.Validation("prefix %q matches %d entries", keyOrPrefix, len(matches))
		}
	}
	return models.JournalEntry{}, apperrors.NotFound("journal entry", keyOrPrefix)
}

// Update replaces title, type and description of the addressed entry. The
// id, timestamp and list position are kept. A missing key returns ErrNotFound
// and nothing is written.
func (s *Service) Update(key string, in Input) (models.JournalEntry, error) {
	fields, err := in.validate()
	if err != nil {
		return models.JournalEntry{}, err
	}

	entries, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}
	i := indexOf(entries, key)
	if i < 0 {
		return models.JournalEntry{}, apperrors.NotFound("journal entry", key)
	}

	entries[i].Title = fields.Title
	entries[i].Type = fields.Type
	entries[i].Description = fields.Description

	if err := s.save(entries); err != nil {
		return entries[i], err
	}
	return entries[i], nil
}

// Delete removes the addressed entry. A missing key returns ErrNotFound and
// nothing is written.
func (s *Service) Delete(key string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(entries, key)
	if i < 0 {
		return apperrors.NotFound("journal entry", key)
	}

	entries = append(entries[:i], entries[i+1:]...)
	if err := s.save(entries); err != nil {
		return err
	}
	logger.Debug("Journal entry deleted", "key", key)
	return nil
}

// indexOf returns the first entry matching key, or -1. Ids are checked
// before timestamps so an id can never be shadowed by a legacy entry.
func indexOf(entries []models.JournalEntry, key string) int {
	if key == "" {
		return -1
	}
	for i, e := range entries {
		if e.ID == key {
			return i
		}
	}
	for i, e := range entries {
		if e.Timestamp == key {
			return i
		}
	}
	return -1
}
