package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/streakstep/internal/constants"
)

var (
	// Logger is the global logger. It stays nil until Init, and every helper
	// below is a no-op until then, so packages can log from tests freely.
	Logger *log.Logger

	file *lumberjack.Logger
)

// Config holds logger configuration
type Config struct {
	Debug   bool
	DataDir string
	// Quiet keeps debug output out of stderr. The TUI runs on the alternate
	// screen and any stray line written there corrupts the countdown view,
	// so `tui` logs to the file only.
	Quiet bool
}

// Path returns the active log file inside dataDir
func Path(dataDir string) string {
	return filepath.Join(dataDir, constants.LogDirName, constants.AppName+".log")
}

// Init opens the rotating log file under dataDir. Warnings and errors are
// always recorded; --debug lowers the level and mirrors to stderr.
func Init(cfg Config) error {
	logPath := Path(cfg.DataDir)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}

	Close()
	file = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	level := log.WarnLevel
	var writer io.Writer = file
	if cfg.Debug {
		level = log.DebugLevel
		if !cfg.Quiet {
			writer = io.MultiWriter(os.Stderr, file)
		}
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Close flushes and closes the log file. Logging after Close is dropped.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }

// Info logs an info message
func Info(msg string, keyvals ...interface{}) { logAt(log.InfoLevel, msg, keyvals) }

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) { logAt(log.WarnLevel, msg, keyvals) }

// Error logs an error message
func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }
