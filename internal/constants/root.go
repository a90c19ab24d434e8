package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog.
// Decline runs when the user answers no; it may be nil.
type ConfirmationMsg struct {
	Title   string
	Message string
	Action  func() tea.Cmd
	Decline func() tea.Cmd
}

const (
	AppName           = "streakstep"
	DefaultDataDir    = "~/.config/streakstep"
	EnvPrefix         = "STREAKSTEP_"
	Version           = "v0.1.0"
	StreakFileName    = "streakstep_data.json"
	JournalFileName   = "journal_entries.json"
	SQLiteFileName    = "streakstep.db"
	ConfigFileName    = "config.yaml"
	DotEnvFileName    = ".env"
	LockFileName      = "streakstep.lock"
	BackendJSON       = "json"
	BackendSQLite     = "sqlite"
	DefaultBackend    = BackendJSON
	DefaultGoalDays   = 1
	CompletionTitle   = "Goal Reached!"
	CompletionMessage = "Well done! Want to add another day to your goal?"

	// Display labels
	ModeLabelPrecise = "Mode: Full Timer (SPACE)"
	ModeLabelCoarse  = "Mode: Simple Timer (SPACE)"
	CompletedDisplay = "0 Days"

	// Log rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streakstep-"
	BackupFileSuffix = ".json"
)

// Session States
const (
	StateTimer SessionState = iota
	StateJournal
	StateAddEntry
	StateEditEntry
	StateViewEntry
	StateConfirmation
)

// NumMainTabs is the number of tabs cycled with tab/shift+tab
const NumMainTabs = 2
