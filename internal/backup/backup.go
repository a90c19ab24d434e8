package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/utils"
)

const snapshotVersion = 1

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Snapshot is the content of a backup file. It is backend neutral so a
// JSON installation can be restored into SQLite and the other way round.
type Snapshot struct {
	Version   int                   `json:"version"`
	CreatedAt string                `json:"created_at"`
	Backend   string                `json:"backend"`
	Streak    snapshotStreak        `json:"streak"`
	Journal   []models.JournalEntry `json:"journal"`
}

type snapshotStreak struct {
	Streak        int    `json:"streak"`
	GoalDays      int    `json:"goal_days"`
	LastGoalStart string `json:"last_goal_start"`
}

// Manager handles backup operations
type Manager struct {
	store     storage.Provider
	clock     utils.Clock
	backupDir string
}

// NewManager creates a backup manager writing to dataDir/backups
func NewManager(store storage.Provider, dataDir string, clock utils.Clock) *Manager {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Manager{
		store:     store,
		clock:     clock,
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes a snapshot of the current data and rotates old backups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup writes a snapshot. skipRotation is set during restore so the
// safety copy never pushes an older backup out.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	snap, err := m.snapshot()
	if err != nil {
		return "", err
	}

	backupPath, err := m.uniquePath()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := writeFileSync(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

func (m *Manager) snapshot() (Snapshot, error) {
	state, err := m.store.LoadStreak()
	if err != nil {
		// backing up defaults over a broken file would rotate out good backups
		return Snapshot{}, fmt.Errorf("cannot back up unreadable streak data: %w", err)
	}
	entries, err := m.store.LoadEntries()
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot back up unreadable journal: %w", err)
	}

	now := m.clock.Now()
	return Snapshot{
		Version:   snapshotVersion,
		CreatedAt: utils.FormatTimestamp(now),
		Backend:   m.store.Backend(),
		Streak: snapshotStreak{
			Streak:        state.Streak,
			GoalDays:      state.GoalDays,
			LastGoalStart: utils.FormatTimestamp(state.LastGoalStart.In(now.Location())),
		},
		Journal: entries,
	}, nil
}

// uniquePath picks a backup filename with minute precision, falling back to
// seconds and then a counter when names collide.
func (m *Manager) uniquePath() (string, error) {
	now := m.clock.Now()

	timestamp := now.Format("20060102-1504")
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return backupPath, nil
	}

	timestamp = now.Format("20060102-150405")
	backupPath = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix)
		backupPath = filepath.Join(m.backupDir, name)
	}
}

// parseBackupName extracts the timestamp from a backup filename
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// counter suffix: YYYYMMDD-HHMMSS-N
	counter := 0
	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[2], "%d", &counter); err != nil {
			return time.Time{}, 0, false
		}
		stamp = parts[0] + "-" + parts[1]
	}

	if t, err := time.ParseInLocation("20060102-150405", stamp, time.Local); err == nil {
		return t, counter, true
	}
	// minute precision names are always the first backup of their minute
	if t, err := time.ParseInLocation("20060102-1504", stamp, time.Local); err == nil && len(parts) == 2 {
		return t, -1, true
	}
	return time.Time{}, 0, false
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type ranked struct {
		BackupInfo
		counter int
	}
	var found []ranked
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		timestamp, counter, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		found = append(found, ranked{
			BackupInfo: BackupInfo{Path: path, Timestamp: timestamp, Size: info.Size()},
			counter:    counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].Timestamp.Equal(found[j].Timestamp) {
			return found[i].Timestamp.After(found[j].Timestamp)
		}
		return found[i].counter > found[j].counter
	})

	backups := make([]BackupInfo, 0, len(found))
	for _, f := range found {
		backups = append(backups, f.BackupInfo)
	}
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) <= constants.MaxBackups {
		return nil
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// ReadBackup loads and verifies a backup file
func ReadBackup(path string, loc *time.Location) (models.StreakState, []models.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.StreakState{}, nil, fmt.Errorf("backup file does not exist: %s", path)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.StreakState{}, nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.Version != snapshotVersion {
		return models.StreakState{}, nil, fmt.Errorf("unsupported backup version %d", snap.Version)
	}

	start, err := utils.ParseTimestamp(snap.Streak.LastGoalStart, loc)
	if err != nil {
		return models.StreakState{}, nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	state := models.StreakState{Streak: snap.Streak.Streak, GoalDays: snap.Streak.GoalDays, LastGoalStart: start}
	if !state.Valid() {
		return models.StreakState{}, nil, fmt.Errorf("backup contains invalid streak state %+v", snap.Streak)
	}

	entries := snap.Journal
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return state, entries, nil
}

// RestoreBackup replaces the current data with the content of backupPath.
// The current data is backed up first and the name of that safety copy is
// returned. It is empty when the current data could not be read.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	state, entries, err := ReadBackup(backupPath, m.clock.Now().Location())
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(true)
	if err != nil {
		logger.Warn("Could not back up current data before restore", "error", err)
		current = ""
	}

	if err := m.store.SaveStreak(state); err != nil {
		return current, apperrors.Persistence(fmt.Errorf("restore streak: %w", err))
	}
	if err := m.store.SaveEntries(entries); err != nil {
		return current, apperrors.Persistence(fmt.Errorf("restore journal: %w", err))
	}
	logger.Info("Restored backup", "path", backupPath, "entries", len(entries))
	return current, nil
}

// writeFileSync creates dst and syncs it to disk
func writeFileSync(dst string, data []byte) error {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
