package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/lockfile"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lock, err := lockfile.Acquire(ctx.DataDir)
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			return fmt.Errorf("%w; close it before starting another", err)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	// Perform automatic backup on TUI startup (after successful load)
	if ctx.Settings.AutoBackup {
		ctx.PerformAutomaticBackup()
	}

	model := tui.NewModel(ctx.Engine(), ctx.Journal(), ctx.Settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
