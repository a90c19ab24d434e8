package streaks

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/constants"
	apperrors "github.com/julianstephens/streakstep/internal/errors"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/streak"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func printState(ctx *cli.Context, s models.StreakState) {
	ctx.Printf("Streak:  %d\n", s.Streak)
	ctx.Printf("Goal:    %s\n", plural(s.GoalDays, "day"))
	ctx.Printf("Started: %s\n", s.LastGoalStart.Format(constants.DisplayTimeFormat))
}

// warnPersistence reports a failed save without failing the command
func warnPersistence(ctx *cli.Context, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.ErrPersistence) {
		ctx.Printf("⚠ Could not save: %v\n", err)
		return nil
	}
	return err
}

type StatusCmd struct {
	Precise  bool `help:"Show the full d/h/m/s countdown."`
	NoPrompt bool `help:"Do not ask to resolve a reached goal."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()
	if c.Precise {
		engine.SetPrecise(true)
	}

	tick := engine.Now()
	printState(ctx, tick.State)
	ctx.Printf("Left:    %s\n", tick.Display.Text)

	if tick.Phase != streak.Completed {
		return nil
	}

	ctx.Println()
	ctx.Printf("🎉 %s\n", constants.CompletionTitle)
	if c.NoPrompt || !tick.Crossed {
		return nil
	}
	if err := ctx.EnsureNoSession("resolving the goal here"); err != nil {
		ctx.Printf("⚠ %v\n", err)
		return nil
	}

	extend, err := ctx.Confirm(constants.CompletionTitle, constants.CompletionMessage)
	if errors.Is(err, cli.ErrAborted) {
		ctx.Println("No changes made.")
		return nil
	}
	if err != nil {
		return err
	}

	err = engine.ResolveCompletion(extend)
	if extend {
		ctx.Printf("✓ Goal extended to %s. Streak: %d\n", plural(engine.State().GoalDays, "day"), engine.State().Streak)
	} else {
		ctx.Println("✓ Streak reset. New goal: 1 day")
	}
	return warnPersistence(ctx, err)
}

type FailCmd struct {
	Yes bool `short:"y" help:"Skip confirmation."`
}

func (c *FailCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureNoSession("resetting the streak"); err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("I couldn't do it", "This resets your streak to 0 and your goal to 1 day.")
		if errors.Is(err, cli.ErrAborted) || (err == nil && !ok) {
			ctx.Println("Streak unchanged.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	engine := ctx.Engine()
	err := engine.RecordFailure()
	ctx.Println("Streak reset. Tomorrow is a new day.")
	printState(ctx, engine.State())
	return warnPersistence(ctx, err)
}

type RewindCmd struct {
	Days int `default:"1" help:"Number of days to rewind."`
}

func (c *RewindCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return apperrors.Validation("days must be at least 1")
	}
	if err := ctx.EnsureNoSession("rewinding"); err != nil {
		return err
	}

	engine := ctx.Engine()
	for i := 0; i < c.Days; i++ {
		if err := engine.RewindOneDay(); err != nil {
			return warnPersistence(ctx, err)
		}
	}
	ctx.Printf("Rewound goal start by %s.\n", plural(c.Days, "day"))
	printState(ctx, engine.State())
	return nil
}
