package entries

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, answer bool) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	clock := &utils.FixedClock{T: testNow}
	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    storage.NewJSONStore(t.TempDir(), clock),
		Clock:    clock,
		Settings: config.Defaults(),
		Prompter: cli.StaticPrompter(answer),
		Out:      out,
	}, out
}

func strPtr(s string) *string { return &s }

func addEntry(t *testing.T, ctx *cli.Context, title, typ string) models.JournalEntry {
	t.Helper()
	cmd := &JournalAddCmd{Title: title, Type: typ}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	list, err := ctx.Store.LoadEntries()
	if err != nil {
		t.Fatal(err)
	}
	return list[0]
}

func TestJournalAdd(t *testing.T) {
	ctx, out := setupTestContext(t, true)

	e := addEntry(t, ctx, "  Ran 5k ", "victory")
	if e.Title != "Ran 5k" || e.Type != models.EntryVictory || e.ID == "" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if !strings.Contains(out.String(), "✓ Victory recorded: Ran 5k") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	err := (&JournalAddCmd{Title: "   ", Type: "victory"}).Run(ctx)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}
	list, _ := ctx.Store.LoadEntries()
	if len(list) != 1 {
		t.Errorf("blank title should not be written, have %d entries", len(list))
	}
}

func TestJournalList(t *testing.T) {
	ctx, out := setupTestContext(t, true)

	if err := (&JournalListCmd{Type: "all"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No journal entries yet.") {
		t.Errorf("unexpected empty output:\n%s", out.String())
	}

	addEntry(t, ctx, "First", "victory")
	addEntry(t, ctx, "Second", "setback")
	addEntry(t, ctx, "Third", "victory")

	out.Reset()
	if err := (&JournalListCmd{Type: "all"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "Third") || !strings.HasSuffix(lines[2], "First") {
		t.Errorf("expected newest first:\n%s", out.String())
	}

	out.Reset()
	if err := (&JournalListCmd{Type: "setback"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "✦") != 1 || !strings.Contains(out.String(), "Second") {
		t.Errorf("type filter failed:\n%s", out.String())
	}

	out.Reset()
	if err := (&JournalListCmd{Type: "all", Limit: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "✦") != 2 {
		t.Errorf("limit not applied:\n%s", out.String())
	}
}

func TestJournalView(t *testing.T) {
	ctx, out := setupTestContext(t, true)
	cmd := &JournalAddCmd{Title: "Walk", Type: "victory", Description: "Around the lake"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}
	list, _ := ctx.Store.LoadEntries()

	out.Reset()
	if err := (&JournalViewCmd{Key: list[0].ID[:8]}).Run(ctx); err != nil {
		t.Fatalf("view by prefix failed: %v", err)
	}
	for _, want := range []string{"Walk", "Type:    Victory", "Created: 2025-03-10 09:00", "Around the lake"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := (&JournalViewCmd{Key: "nope-nope"}).Run(ctx); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestJournalEdit(t *testing.T) {
	ctx, out := setupTestContext(t, true)
	e := addEntry(t, ctx, "Old", "victory")

	out.Reset()
	if err := (&JournalEditCmd{Key: e.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	cmd := &JournalEditCmd{Key: e.ID, Title: strPtr("New"), Type: strPtr("setback")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	list, _ := ctx.Store.LoadEntries()
	got := list[0]
	if got.Title != "New" || got.Type != models.EntrySetback || got.ID != e.ID || got.Timestamp != e.Timestamp {
		t.Errorf("unexpected entry after edit: %+v", got)
	}

	err := (&JournalEditCmd{Key: e.ID, Title: strPtr(" ")}).Run(ctx)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestJournalDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		ctx, out := setupTestContext(t, false)
		e := addEntry(t, ctx, "Keep", "victory")

		if err := (&JournalDeleteCmd{Key: e.ID}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "Delete cancelled.") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
		list, _ := ctx.Store.LoadEntries()
		if len(list) != 1 {
			t.Error("declined delete removed the entry")
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		ctx, _ := setupTestContext(t, true)
		e := addEntry(t, ctx, "Gone", "setback")
		addEntry(t, ctx, "Stays", "victory")

		if err := (&JournalDeleteCmd{Key: e.ID}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		list, _ := ctx.Store.LoadEntries()
		if len(list) != 1 || list[0].Title != "Stays" {
			t.Errorf("unexpected entries after delete: %+v", list)
		}
	})

	t.Run("missing", func(t *testing.T) {
		ctx, _ := setupTestContext(t, true)
		err := (&JournalDeleteCmd{Key: "missing-key", Yes: true}).Run(ctx)
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestShortKey(t *testing.T) {
	withID := models.JournalEntry{ID: "0123456789abcdef", Timestamp: "2025-03-10T09:00:00"}
	if got := shortKey(withID); got != "01234567" {
		t.Errorf("shortKey = %q", got)
	}
	legacy := models.JournalEntry{Timestamp: "2025-03-10T09:00:00"}
	if got := shortKey(legacy); got != "2025-03-10T09:00:00" {
		t.Errorf("legacy shortKey = %q", got)
	}
}
