package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateKey     ConflictType = "duplicate_key"
	ConflictEmptyTitle       ConflictType = "empty_title"
	ConflictInvalidType      ConflictType = "invalid_type"
	ConflictInvalidTimestamp ConflictType = "invalid_timestamp"
	ConflictInvalidStreak    ConflictType = "invalid_streak"
	ConflictFutureGoalStart  ConflictType = "future_goal_start"
)

// futureTolerance absorbs small clock differences between writes and checks
const futureTolerance = time.Minute

// Conflict represents a problem found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Keys        []string // entry keys involved, if any
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Err joins the conflicts into one error, or returns nil
func (vr *ValidationResult) Err() error {
	errs := make([]error, len(vr.Conflicts))
	for i, c := range vr.Conflicts {
		errs[i] = errors.New(c.Description)
	}
	return errors.Join(errs...)
}

func (vr *ValidationResult) add(t ConflictType, keys []string, format string, args ...interface{}) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Keys:        keys,
	})
}

// Validator checks stored streak and journal data
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateStreak checks the streak invariants and that the window did not
// start in the future
func (v *Validator) ValidateStreak(state models.StreakState, now time.Time) ValidationResult {
	var result ValidationResult
	if !state.Valid() {
		result.add(ConflictInvalidStreak, nil, "invalid streak state: streak %d, goal %d days", state.Streak, state.GoalDays)
	}
	if state.LastGoalStart.After(now.Add(futureTolerance)) {
		result.add(ConflictFutureGoalStart, nil, "goal start %s is in the future", state.LastGoalStart.Format(constants.DisplayTimeFormat))
	}
	return result
}

// ValidateJournal checks entries for duplicate keys, empty titles, unknown
// types and unparseable timestamps
func (v *Validator) ValidateJournal(entries []models.JournalEntry, loc *time.Location) ValidationResult {
	var result ValidationResult

	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		key := e.Key()
		if prev, ok := seen[key]; ok {
			result.add(ConflictDuplicateKey, []string{key}, "entries %d and %d share key %q", prev, i, key)
		} else {
			seen[key] = i
		}

		if strings.TrimSpace(e.Title) == "" {
			result.add(ConflictEmptyTitle, []string{key}, "entry %d has an empty title", i)
		}
		if _, err := models.ParseEntryType(string(e.Type)); err != nil {
			result.add(ConflictInvalidType, []string{key}, "entry %d: %v", i, err)
		}
		if _, err := utils.ParseTimestamp(e.Timestamp, loc); err != nil {
			result.add(ConflictInvalidTimestamp, []string{key}, "entry %d: %v", i, err)
		}
	}
	return result
}
