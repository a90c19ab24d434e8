package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakstep/internal/models"
)

type EntryFormModel struct {
	Title       string
	Type        string
	Description string
}

type ConfirmationFormModel struct {
	Confirmed bool
}

// NewEntryForm builds the add/edit journal entry form
func NewEntryForm(fm *EntryFormModel) *huh.Form {
	options := make([]huh.Option[string], len(models.EntryTypes))
	for i, t := range models.EntryTypes {
		options[i] = huh.NewOption(t.Label(), string(t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("please enter a title")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&fm.Type),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm builds a yes/no prompt
func NewConfirmationForm(fm *ConfirmationFormModel, title, message string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
