package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/streakstep/internal/backup"
	"github.com/julianstephens/streakstep/internal/journal"
	"github.com/julianstephens/streakstep/internal/lockfile"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/storage"
	"github.com/julianstephens/streakstep/internal/streak"
	"github.com/julianstephens/streakstep/internal/utils"
)

type Context struct {
	Store    storage.Provider
	DataDir  string
	Clock    utils.Clock
	Settings models.Settings
	Debug    bool
	Prompter Prompter

	Out io.Writer
	In  io.Reader
}

// Engine returns a streak engine over the context's store
func (c *Context) Engine() *streak.Engine {
	e := streak.NewEngine(c.Store, c.Clock)
	e.SetPrecise(c.Settings.PreciseTimer)
	return e
}

// Journal returns the journal service over the context's store
func (c *Context) Journal() *journal.Service {
	return journal.NewService(c.Store, c.Clock)
}

// Backups returns the backup manager for the data directory
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, c.DataDir, c.Clock)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// EnsureNoSession fails when a live TUI session holds the data directory.
// The TUI keeps the streak in memory and would overwrite the change.
func (c *Context) EnsureNoSession(action string) error {
	pid, alive, err := lockfile.Holder(lockfile.Path(c.DataDir))
	if err != nil || !alive {
		return nil
	}
	return fmt.Errorf("%w (pid %d); close it before %s", lockfile.ErrLocked, pid, action)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted output for the user
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line of output for the user
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Confirm asks a yes/no question through the configured Prompter
func (c *Context) Confirm(title, description string) (bool, error) {
	p := c.Prompter
	if p == nil {
		p = &LinePrompter{In: c.In, Out: c.out()}
	}
	return p.Confirm(title, description)
}

// Prompter asks the user a yes/no question
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// LinePrompter reads a y/N answer from a line of input
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *LinePrompter) Confirm(title, description string) (bool, error) {
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, title)
	if description != "" {
		fmt.Fprintln(out, description)
	}
	fmt.Fprint(out, "Continue? [y/N]: ")

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// StaticPrompter answers every question the same way. It backs --yes flags.
type StaticPrompter bool

func (p StaticPrompter) Confirm(string, string) (bool, error) {
	return bool(p), nil
}
