package models

import "time"

// StreakState is the singleton goal state of an installation
type StreakState struct {
	Streak        int       `json:"streak"`          // completed goal windows in a row
	GoalDays      int       `json:"goal_days"`       // length of the current goal window, always >= 1
	LastGoalStart time.Time `json:"last_goal_start"` // instant the current window began
}

// DefaultStreakState returns the state used on first run or after a failed load
func DefaultStreakState(now time.Time) StreakState {
	return StreakState{Streak: 0, GoalDays: 1, LastGoalStart: now}
}

// Valid reports whether the state satisfies its invariants
func (s StreakState) Valid() bool {
	return s.Streak >= 0 && s.GoalDays >= 1 && !s.LastGoalStart.IsZero()
}
