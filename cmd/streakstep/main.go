package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/cli/backups"
	"github.com/julianstephens/streakstep/internal/cli/entries"
	"github.com/julianstephens/streakstep/internal/cli/settings"
	"github.com/julianstephens/streakstep/internal/cli/streaks"
	"github.com/julianstephens/streakstep/internal/cli/system"
	"github.com/julianstephens/streakstep/internal/config"
	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	DataDir string `help:"Directory holding streak, journal and settings files." env:"STREAKSTEP_DATA_DIR" type:"string" default:"~/.config/streakstep"`
	Backend string `help:"Storage backend." env:"STREAKSTEP_BACKEND" enum:"json,sqlite" default:"json"`
	Debug   bool   `help:"Enable debug logging." env:"STREAKSTEP_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Initialize streakstep storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   streaks.StatusCmd    `cmd:"" help:"Show the current streak and time left."`
	Fail     streaks.FailCmd      `cmd:"" help:"Record that you couldn't do it and reset the streak."`
	Rewind   streaks.RewindCmd    `cmd:"" hidden:"" help:"Simulate a day passing (debug)."`
	Journal  entries.JournalCmd   `cmd:"" help:"Manage victory and setback entries."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	// .env files only fill variables that are not already set
	config.LoadDotenv(constants.DotEnvFileName)
	if dir, err := storage.ExpandPath(envOr("STREAKSTEP_DATA_DIR", constants.DefaultDataDir)); err == nil {
		config.LoadDotenv(filepath.Join(dir, constants.DotEnvFileName))
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Streak countdown and victory/setback journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dataDir, err := storage.ExpandPath(CLI.DataDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: dataDir,
		Quiet:   command == "tui",
	}); err != nil {
		apperrors.Fatal(err)
	}
	defer logger.Close()

	appSettings, err := config.Load(dataDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	clock, err := utils.NewClock(appSettings.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := storage.New(CLI.Backend, dataDir, clock)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	// Load the store before running the command (Init command will handle its own setup)
	if command != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:    store,
		DataDir:  dataDir,
		Clock:    clock,
		Settings: appSettings,
		Debug:    CLI.Debug,
		Prompter: cli.DefaultPrompter(),
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		logger.Close()
		apperrors.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
