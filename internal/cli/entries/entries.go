package entries

import (
	"errors"
	"strings"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/journal"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Record a victory or setback."`
	List   JournalListCmd   `cmd:"" help:"List journal entries, newest first." default:"1"`
	View   JournalViewCmd   `cmd:"" help:"Show a journal entry."`
	Edit   JournalEditCmd   `cmd:"" help:"Edit a journal entry."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
}

// shortKey trims ids for list output
func shortKey(e models.JournalEntry) string {
	if e.ID != "" && len(e.ID) > 8 {
		return e.ID[:8]
	}
	return e.Key()
}

// created formats an entry timestamp for display, falling back to the raw value
func created(ctx *cli.Context, e models.JournalEntry) string {
	t, err := utils.ParseTimestamp(e.Timestamp, ctx.Clock.Now().Location())
	if err != nil {
		return e.Timestamp
	}
	return t.Format(constants.DisplayTimeFormat)
}

// saved reports a write failure without failing the command
func saved(ctx *cli.Context, err error) error {
	if apperrors.Is(err, apperrors.ErrPersistence) {
		ctx.Printf("⚠ Could not save: %v\n", err)
		return nil
	}
	return err
}

type JournalAddCmd struct {
	Title       string `arg:"" help:"Entry title."`
	Type        string `short:"t" enum:"victory,setback" default:"victory" help:"Entry type (victory or setback)."`
	Description string `short:"d" help:"Optional description."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Journal().Create(journal.Input{Title: c.Title, Type: c.Type, Description: c.Description})
	if err != nil && !apperrors.Is(err, apperrors.ErrPersistence) {
		return err
	}
	ctx.Printf("✓ %s recorded: %s (%s)\n", entry.Type.Label(), entry.Title, shortKey(entry))
	return saved(ctx, err)
}

type JournalListCmd struct {
	Type  string `short:"t" enum:"victory,setback,all" default:"all" help:"Only show entries of this type."`
	Limit int    `short:"n" default:"0" help:"Show at most this many entries (0 for all)."`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Journal().List()
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range list {
		if c.Type != "all" && string(e.Type) != c.Type {
			continue
		}
		if c.Limit > 0 && shown >= c.Limit {
			break
		}
		ctx.Printf("✦ %s  %-8s  %-9s %s\n", created(ctx, e), shortKey(e), "["+e.Type.Label()+"]", e.Title)
		shown++
	}

	if shown == 0 {
		ctx.Println("No journal entries yet.")
	}
	return nil
}

type JournalViewCmd struct {
	Key string `arg:"" help:"Entry id, id prefix or timestamp."`
}

func (c *JournalViewCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Journal().Find(c.Key)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", e.Title)
	ctx.Printf("%s\n\n", strings.Repeat("─", len([]rune(e.Title))))
	ctx.Printf("Type:    %s\n", e.Type.Label())
	ctx.Printf("Created: %s\n", created(ctx, e))
	ctx.Printf("Key:     %s\n", e.Key())
	if e.Description != "" {
		ctx.Printf("\n%s\n", e.Description)
	}
	return nil
}

type JournalEditCmd struct {
	Key         string  `arg:"" help:"Entry id, id prefix or timestamp."`
	Title       *string `help:"New title."`
	Type        *string `short:"t" enum:"victory,setback" help:"New entry type."`
	Description *string `short:"d" help:"New description."`
}

func (c *JournalEditCmd) Run(ctx *cli.Context) error {
	svc := ctx.Journal()
	e, err := svc.Find(c.Key)
	if err != nil {
		return err
	}

	in := journal.Input{Title: e.Title, Type: string(e.Type), Description: e.Description}
	updated := false
	if c.Title != nil {
		in.Title = *c.Title
		updated = true
	}
	if c.Type != nil {
		in.Type = *c.Type
		updated = true
	}
	if c.Description != nil {
		in.Description = *c.Description
		updated = true
	}
	if !updated {
		ctx.Println("No changes specified. Use --title, --type or --description.")
		return nil
	}

	_, err = svc.Update(e.Key(), in)
	if err != nil && !apperrors.Is(err, apperrors.ErrPersistence) {
		return err
	}
	ctx.Println("✓ Entry updated.")
	return saved(ctx, err)
}

type JournalDeleteCmd struct {
	Key string `arg:"" help:"Entry id, id prefix or timestamp."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *JournalDeleteCmd) Run(ctx *cli.Context) error {
	svc := ctx.Journal()
	e, err := svc.Find(c.Key)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm("Delete entry?", "Are you sure you want to delete \""+e.Title+"\"?")
		if errors.Is(err, cli.ErrAborted) || (err == nil && !ok) {
			ctx.Println("Delete cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := svc.Delete(e.Key()); err != nil && !apperrors.Is(err, apperrors.ErrPersistence) {
		return err
	} else if err != nil {
		return saved(ctx, err)
	}
	ctx.Println("✓ Entry deleted.")
	return nil
}
