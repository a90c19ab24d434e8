package models

// Settings represents user preferences stored in config.yaml
type Settings struct {
	PreciseTimer  bool   `yaml:"precise_timer" json:"precise_timer"`   // start the timer in full d/h/m/s mode
	Timezone      string `yaml:"timezone" json:"timezone"`             // IANA timezone name or "Local"
	AutoBackup    bool   `yaml:"auto_backup" json:"auto_backup"`       // snapshot data when the TUI starts
	DebugControls bool   `yaml:"debug_controls" json:"debug_controls"` // expose the rewind key in the TUI
}
