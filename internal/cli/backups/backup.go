package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.Backups().CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip confirmation."`
}

// resolve finds the backup by absolute path, relative path or name in the backup directory
func (c *BackupRestoreCmd) resolve(backupDir string) (string, error) {
	backupPath := c.BackupFile

	if filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", backupPath)
		}
		return backupPath, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		absPath, err := filepath.Abs(backupPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}

	possiblePath := filepath.Join(backupDir, c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()

	backupPath, err := c.resolve(mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if err := ctx.EnsureNoSession("restoring"); err != nil {
		return err
	}

	if !c.Yes {
		ctx.Printf("Restore from: %s\n", backupPath)
		ok, err := ctx.Confirm(
			"⚠️  This will replace your current streak and journal with the backup.",
			"A backup of your current data will be created before restoring.",
		)
		if errors.Is(err, cli.ErrAborted) || (err == nil && !ok) {
			ctx.Println("Restore cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if safety != "" {
		ctx.Printf("Created backup of current data: %s\n", filepath.Base(safety))
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Data restored successfully!")
	return nil
}
