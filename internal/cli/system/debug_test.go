package system

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/journal"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
)

func TestDebugDumpStreak(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendJSON, true)
	state := models.StreakState{Streak: 2, GoalDays: 3, LastGoalStart: testNow.Add(-72 * time.Hour)}
	if err := ctx.Store.SaveStreak(state); err != nil {
		t.Fatal(err)
	}

	if err := (&DebugDumpStreakCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump-streak failed: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["phase"] != "completed" {
		t.Errorf("phase = %v, want completed", got["phase"])
	}
	if got["streak"] != float64(2) || got["goal_days"] != float64(3) {
		t.Errorf("unexpected dump: %v", got)
	}
	if got["remaining_seconds"] != float64(0) {
		t.Errorf("remaining_seconds = %v, want 0", got["remaining_seconds"])
	}
}

func TestDebugDumpEntry(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendJSON, true)
	entry, err := ctx.Journal().Create(journal.Input{Title: "First run", Type: "victory"})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&DebugDumpEntryCmd{Key: entry.ID}).Run(ctx); err != nil {
		t.Fatalf("dump-entry failed: %v", err)
	}

	var got models.JournalEntry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.ID != entry.ID || got.Title != "First run" {
		t.Errorf("unexpected entry: %+v", got)
	}

	if err := (&DebugDumpEntryCmd{Key: "does-not-exist"}).Run(ctx); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestDebugPath(t *testing.T) {
	ctx, out := setupTestContext(t, constants.BackendJSON, true)
	if err := (&DebugPathCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["data_dir"] != ctx.DataDir || got["backend"] != constants.BackendJSON {
		t.Errorf("unexpected paths: %v", got)
	}
	if got["log"] != logger.Path(ctx.DataDir) {
		t.Errorf("log path = %q", got["log"])
	}
}
