package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels a prompt
var ErrAborted = errors.New("aborted")

// HuhPrompter asks through an interactive huh confirm
type HuhPrompter struct{}

func (HuhPrompter) Confirm(title, description string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(huh.ThemeDracula()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrAborted
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// DefaultPrompter picks the huh prompter on a terminal and line input otherwise
func DefaultPrompter() Prompter {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return HuhPrompter{}
	}
	return &LinePrompter{}
}
