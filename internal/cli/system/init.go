package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
	"github.com/julianstephens/streakstep/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing streak and journal data before initialization."`
}

// dataFiles lists the files owned by the selected backend
func dataFiles(ctx *cli.Context) []string {
	if ctx.Store.Backend() == constants.BackendSQLite {
		return []string{ctx.Store.GetConfigPath()}
	}
	return []string{
		filepath.Join(ctx.DataDir, constants.StreakFileName),
		filepath.Join(ctx.DataDir, constants.JournalFileName),
	}
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing storage: %w", err)
		}
		for _, path := range dataFiles(ctx) {
			if _, err := os.Stat(path); err == nil {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("failed to delete existing data: %w", err)
				}
				ctx.Printf("Deleted existing data at: %s\n", path)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to access existing data: %w", err)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if _, err := os.Stat(config.Path(ctx.DataDir)); os.IsNotExist(err) {
		if err := config.Save(ctx.DataDir, config.Defaults()); err != nil {
			return err
		}
		ctx.Printf("Wrote default settings to: %s\n", config.Path(ctx.DataDir))
	}
	return nil
}
