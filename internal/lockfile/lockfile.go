// Package lockfile keeps a second interactive session from writing the same
// data directory at the same time.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableFunc  = currentExecutable
)

// ErrLocked is returned when another live process holds the lock
var ErrLocked = errors.New("another streakstep session is running")

// Lock is a held lock file
type Lock struct {
	path string
	pid  int
}

// Path returns the lock file location inside dataDir
func Path(dataDir string) string {
	return filepath.Join(dataDir, constants.LockFileName)
}

func currentExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}

// Holder returns the pid recorded in the lock file and whether that process
// is still alive and running the same executable.
func Holder(path string) (pid int, alive bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false, errors.New("lockfile is malformed")
	}
	pid, err = strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, false, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false, nil
	}
	return pid, process.Executable() == parts[1], nil
}

// Acquire takes the lock in dataDir. A lock left behind by a process that
// is no longer running is replaced.
func Acquire(dataDir string) (*Lock, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := Path(dataDir)
	self := getpidFunc()

	pid, alive, err := Holder(path)
	switch {
	case err == nil && alive && pid != self:
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
	case err == nil:
		logger.Debug("Replacing stale lock", "path", path, "pid", pid)
	case !os.IsNotExist(err):
		logger.Warn("Ignoring unreadable lock", "path", path, "error", err)
	}

	content := fmt.Sprintf("%d|%s", self, executableFunc())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: self}, nil
}

// Release removes the lock if it still belongs to this process
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	pid, _, err := Holder(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
