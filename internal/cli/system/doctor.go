package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/lockfile"
	"github.com/julianstephens/streakstep/internal/utils"
	"github.com/julianstephens/streakstep/internal/validation"
)

type DoctorCmd struct{}

type doctor struct {
	ctx      *cli.Context
	hasError bool
}

func (d *doctor) check(name string, err error) bool {
	if err != nil {
		d.ctx.Printf("❌ %s: FAIL\n", name)
		d.ctx.Printf("   Error: %v\n", err)
		d.hasError = true
		return false
	}
	d.ctx.Printf("✓ %s: OK\n", name)
	return true
}

func (d *doctor) warn(name string, err error) {
	if err != nil {
		d.ctx.Printf("⚠ %s: WARNING\n", name)
		d.ctx.Printf("   %v\n", err)
		return
	}
	d.ctx.Printf("✓ %s: OK\n", name)
}

func (d *doctor) skip(name, reason string) {
	d.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	d := &doctor{ctx: ctx}

	reachable := d.check("Data directory", checkDataDir(ctx.DataDir))
	if reachable {
		reachable = d.check("Storage reachable", ctx.Store.Load())
	} else {
		d.skip("Storage reachable", "data directory not usable")
	}

	if reachable {
		d.check("Streak data", checkStreak(ctx))
		d.check("Journal data", checkJournal(ctx))
	} else {
		d.skip("Streak data", "storage not reachable")
		d.skip("Journal data", "storage not reachable")
	}

	d.check("Settings", checkSettings(ctx.DataDir))
	d.warn("Backups present", checkBackupsPresent(ctx))
	d.warn("Session lock", checkLock(ctx.DataDir))
	d.check("Clock/timezone", checkClockTimezone(ctx))

	ctx.Println()
	if d.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDataDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("data directory not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func checkStreak(ctx *cli.Context) error {
	state, err := ctx.Store.LoadStreak()
	if err != nil {
		return err
	}
	result := validation.New().ValidateStreak(state, ctx.Clock.Now())
	return result.Err()
}

func checkJournal(ctx *cli.Context) error {
	entries, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}
	result := validation.New().ValidateJournal(entries, ctx.Clock.Now().Location())
	return result.Err()
}

func checkSettings(dataDir string) error {
	_, err := config.Load(dataDir)
	return err
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkLock(dataDir string) error {
	pid, alive, err := lockfile.Holder(lockfile.Path(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("unreadable lock file %s: %w", filepath.Base(lockfile.Path(dataDir)), err)
	}
	if alive {
		return fmt.Errorf("a session is running (pid %d)", pid)
	}
	return fmt.Errorf("stale lock from pid %d will be replaced on next start", pid)
}

func checkClockTimezone(ctx *cli.Context) error {
	if err := utils.ValidateTimezone(ctx.Settings.Timezone); err != nil {
		return err
	}

	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
