// Package streak implements the goal timer: a window of GoalDays days that
// starts at LastGoalStart and, once elapsed, must be resolved by extending
// the goal or starting over.
package streak

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/models"
)

const day = 24 * time.Hour

// Phase is the observable state of the goal window
type Phase int

const (
	Running Phase = iota
	Completed
)

func (p Phase) String() string {
	if p == Completed {
		return "completed"
	}
	return "running"
}

// GoalEnd returns the instant the current window elapses. Days are counted
// on the wall clock, so a window spanning a DST change still ends at the
// start's time of day.
func GoalEnd(s models.StreakState) time.Time {
	return s.LastGoalStart.AddDate(0, 0, s.GoalDays)
}

// Remaining returns the time left in the window. It is <= 0 once the goal is reached.
func Remaining(s models.StreakState, now time.Time) time.Duration {
	return GoalEnd(s).Sub(now)
}

// Evaluate reports Completed iff now is at or past the goal end
func Evaluate(s models.StreakState, now time.Time) Phase {
	if Remaining(s, now) <= 0 {
		return Completed
	}
	return Running
}

// Extend starts a new, one day longer window and counts the finished one
func Extend(s models.StreakState, now time.Time) models.StreakState {
	return models.StreakState{
		Streak:        s.Streak + 1,
		GoalDays:      s.GoalDays + 1,
		LastGoalStart: now,
	}
}

// Reset starts over from a single day goal
func Reset(now time.Time) models.StreakState {
	return models.DefaultStreakState(now)
}

// Rewind moves the window start back by one calendar day
func Rewind(s models.StreakState) models.StreakState {
	s.LastGoalStart = s.LastGoalStart.AddDate(0, 0, -1)
	return s
}

// FormatPrecise renders d as days, hours, minutes and whole seconds
func FormatPrecise(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / day)
	d -= time.Duration(days) * day
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// CoarseDays returns the whole days left, counting a partial day as a full one
func CoarseDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// FormatCoarse renders d as a rounded-up day count
func FormatCoarse(d time.Duration) string {
	n := CoarseDays(d)
	if n == 1 {
		return "1 Day left"
	}
	return fmt.Sprintf("%d Days left", n)
}

// Display is the text shown for one tick
type Display struct {
	Text      string
	ModeLabel string
}

// Render builds the display for a remaining duration
func Render(remaining time.Duration, precise bool) Display {
	label := constants.ModeLabelCoarse
	if precise {
		label = constants.ModeLabelPrecise
	}
	if remaining <= 0 {
		return Display{Text: constants.CompletedDisplay, ModeLabel: label}
	}
	if precise {
		return Display{Text: FormatPrecise(remaining), ModeLabel: label}
	}
	return Display{Text: FormatCoarse(remaining), ModeLabel: label}
}
