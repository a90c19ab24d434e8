package system

import (
	"bytes"
	"testing"
	"time"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, backend string, initialize bool) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dataDir := t.TempDir()
	clock := &utils.FixedClock{T: testNow}

	store, err := storage.New(backend, dataDir, clock)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if initialize {
		if err := store.Init(); err != nil {
			t.Fatalf("failed to initialize store: %v", err)
		}
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    store,
		DataDir:  dataDir,
		Clock:    clock,
		Settings: config.Defaults(),
		Prompter: cli.StaticPrompter(true),
		Out:      out,
	}
	return ctx, out
}
