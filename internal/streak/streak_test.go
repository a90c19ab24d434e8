package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/streakstep/internal/models"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEvaluateBoundary(t *testing.T) {
	tests := []struct {
		name     string
		goalDays int
		now      time.Time
		want     Phase
	}{
		{"one second before end", 1, jan1.Add(24*time.Hour - time.Second), Running},
		{"exactly at end", 1, jan1.Add(24 * time.Hour), Completed},
		{"one second after end", 1, jan1.Add(24*time.Hour + time.Second), Completed},
		{"at start", 3, jan1, Running},
		{"three day goal exactly", 3, jan1.Add(72 * time.Hour), Completed},
		{"three day goal nanosecond before", 3, jan1.Add(72*time.Hour - 1), Running},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.StreakState{GoalDays: tt.goalDays, LastGoalStart: jan1}
			if got := Evaluate(s, tt.now); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  Phase
	}{
		{"spring forward at wall clock end", time.Date(2024, 3, 9, 12, 0, 0, 0, ny), time.Date(2024, 3, 10, 12, 0, 0, 0, ny), Completed},
		{"spring forward just before end", time.Date(2024, 3, 9, 12, 0, 0, 0, ny), time.Date(2024, 3, 10, 11, 59, 59, 0, ny), Running},
		{"fall back at wall clock end", time.Date(2024, 11, 2, 12, 0, 0, 0, ny), time.Date(2024, 11, 3, 12, 0, 0, 0, ny), Completed},
		{"fall back after 24 elapsed hours", time.Date(2024, 11, 2, 12, 0, 0, 0, ny), time.Date(2024, 11, 3, 11, 30, 0, 0, ny), Running},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.StreakState{GoalDays: 1, LastGoalStart: tt.start}
			if got := Evaluate(s, tt.now); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v (goal end %v)", got, tt.want, GoalEnd(s))
			}
		})
	}
}

func TestRewindAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	s := models.StreakState{GoalDays: 1, LastGoalStart: time.Date(2024, 3, 10, 12, 0, 0, 0, ny)}
	got := Rewind(s).LastGoalStart
	if want := time.Date(2024, 3, 9, 12, 0, 0, 0, ny); !got.Equal(want) {
		t.Errorf("Rewind() start = %v, want %v", got, want)
	}
}

func TestExtendShape(t *testing.T) {
	now := jan1.Add(50 * time.Hour)
	for _, streak := range []int{0, 1, 7, 100} {
		prev := models.StreakState{Streak: streak, GoalDays: streak + 1, LastGoalStart: jan1}
		got := Extend(prev, now)
		if got.Streak != streak+1 || got.GoalDays != streak+2 || !got.LastGoalStart.Equal(now) {
			t.Errorf("Extend(%+v) = %+v", prev, got)
		}
	}
}

func TestReset(t *testing.T) {
	now := jan1.Add(time.Hour)
	got := Reset(now)
	want := models.StreakState{Streak: 0, GoalDays: 1, LastGoalStart: now}
	if got != want {
		t.Errorf("Reset() = %+v, want %+v", got, want)
	}
}

func TestRewind(t *testing.T) {
	s := models.StreakState{Streak: 2, GoalDays: 3, LastGoalStart: jan1}
	got := Rewind(s)
	if !got.LastGoalStart.Equal(jan1.Add(-24*time.Hour)) || got.Streak != 2 || got.GoalDays != 3 {
		t.Errorf("Rewind() = %+v", got)
	}
}

func TestFormatPrecise(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
		{24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second + 999*time.Millisecond, "1d 2h 3m 4s"},
		{59 * time.Second, "0d 0h 0m 59s"},
		{72 * time.Hour, "3d 0h 0m 0s"},
		{-time.Second, "0d 0h 0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatPrecise(tt.d); got != tt.want {
			t.Errorf("FormatPrecise(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCoarse(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Second, "1 Day left"},
		{24 * time.Hour, "1 Day left"},
		{24*time.Hour + time.Second, "2 Days left"},
		{48 * time.Hour, "2 Days left"},
		{71 * time.Hour, "3 Days left"},
	}
	for _, tt := range tests {
		if got := FormatCoarse(tt.d); got != tt.want {
			t.Errorf("FormatCoarse(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		precise   bool
		want      Display
	}{
		{"coarse", 30 * time.Hour, false, Display{"2 Days left", "Mode: Simple Timer (SPACE)"}},
		{"precise", 90 * time.Minute, true, Display{"0d 1h 30m 0s", "Mode: Full Timer (SPACE)"}},
		{"completed coarse", 0, false, Display{"0 Days", "Mode: Simple Timer (SPACE)"}},
		{"completed precise", -time.Hour, true, Display{"0 Days", "Mode: Full Timer (SPACE)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.remaining, tt.precise); got != tt.want {
				t.Errorf("Render() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
