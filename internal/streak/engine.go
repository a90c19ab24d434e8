package streak

import (
	"time"

	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

// Tick is the result of one Recompute
type Tick struct {
	Phase     Phase
	Remaining time.Duration
	Display   Display
	// Crossed is true only on the first tick that observes completion
	Crossed bool
	State   models.StreakState
}

// Engine owns the streak state between ticks and persists every mutation
type Engine struct {
	repo     storage.StreakRepository
	clock    utils.Clock
	state    models.StreakState
	precise  bool
	prompted bool
}

// NewEngine loads the saved state. A failed load is logged and the engine
// starts from the defaults the repository returned.
func NewEngine(repo storage.StreakRepository, clock utils.Clock) *Engine {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	state, err := repo.LoadStreak()
	if err != nil {
		logger.Warn("Could not load streak, using defaults", "error", err)
	}
	if !state.Valid() {
		state = models.DefaultStreakState(clock.Now())
	}
	return &Engine{repo: repo, clock: clock, state: state}
}

// State returns a copy of the current state
func (e *Engine) State() models.StreakState {
	return e.state
}

// Precise reports whether the display is in full d/h/m/s mode
func (e *Engine) Precise() bool {
	return e.precise
}

// SetPrecise selects the display mode
func (e *Engine) SetPrecise(precise bool) {
	e.precise = precise
}

// TogglePrecise flips the display mode and returns the new value
func (e *Engine) TogglePrecise() bool {
	e.precise = !e.precise
	return e.precise
}

// Recompute evaluates the window at now. Completion is edge triggered: the
// first call that sees remaining <= 0 reports Crossed, later calls do not until the window is running again.
func (e *Engine) Recompute(now time.Time) Tick {
	remaining := Remaining(e.state, now)
	phase := Evaluate(e.state, now)

	t := Tick{
		Phase:     phase,
		Remaining: remaining,
		Display:   Render(remaining, e.precise),
		State:     e.state,
	}

	if phase == Running {
		e.prompted = false
		return t
	}

	if !e.prompted {
		e.prompted = true
		t.Crossed = true
		logger.Info("Goal reached", "streak", e.state.Streak, "goal_days", e.state.GoalDays)
	}
	return t
}

// Now recomputes at the clock's current time
func (e *Engine) Now() Tick {
	return e.Recompute(e.clock.Now())
}

// ResolveCompletion extends the goal when extend is true, otherwise resets it.
// The new state is kept even when it cannot be saved; the returned error
// then wraps ErrPersistence.
func (e *Engine) ResolveCompletion(extend bool) error {
	now := e.clock.Now()
	if extend {
		return e.apply(Extend(e.state, now), "extend")
	}
	return e.apply(Reset(now), "reset")
}

// RecordFailure resets the streak in any phase
func (e *Engine) RecordFailure() error {
	return e.apply(Reset(e.clock.Now()), "failure")
}

// RewindOneDay moves the window start back a day to fast-forward the timer
func (e *Engine) RewindOneDay() error {
	return e.apply(Rewind(e.state), "rewind")
}

func (e *Engine) apply(next models.StreakState, action string) error {
	e.state = next
	if Evaluate(next, e.clock.Now()) == Running {
		e.prompted = false
	}
	logger.Debug("Streak updated", "action", action, "streak", next.Streak, "goal_days", next.GoalDays)
	if err := e.repo.SaveStreak(next); err != nil {
		logger.Warn("Failed to save streak", "action", action, "error", err)
		return apperrors.Persistence(err)
	}
	return nil
}
