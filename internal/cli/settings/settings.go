package settings

import (
	"fmt"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	PreciseTimer  *bool   `help:"Start the timer in full d/h/m/s mode."`
	Timezone      *string `help:"IANA timezone name, or Local for the system timezone."`
	AutoBackup    *bool   `help:"Back up data when the TUI starts."`
	DebugControls *bool   `help:"Show the rewind key in the TUI."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List {
		settings := ctx.Settings
		ctx.Println("Current Settings:")
		ctx.Printf("  Precise Timer:   %v\n", settings.PreciseTimer)
		ctx.Printf("  Timezone:        %s\n", settings.Timezone)
		ctx.Printf("  Auto Backup:     %v\n", settings.AutoBackup)
		ctx.Printf("  Debug Controls:  %v\n", settings.DebugControls)
		ctx.Printf("\nConfig file: %s\n", config.Path(ctx.DataDir))
		return nil
	}

	// env overrides apply to this run only and are not written back
	settings, err := config.LoadFile(ctx.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	updated := false
	if c.PreciseTimer != nil {
		settings.PreciseTimer = *c.PreciseTimer
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}
	if c.DebugControls != nil {
		settings.DebugControls = *c.DebugControls
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := config.Save(ctx.DataDir, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
