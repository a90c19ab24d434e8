package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/streakstep/internal/cli"
	"github.com/julianstephens/streakstep/internal/config"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/streak"
	"github.com/julianstephens/streakstep/internal/utils"
)

type DebugCmd struct {
	Path         *DebugPathCmd         `cmd:"" help:"Show data paths."`
	DumpStreak   *DebugDumpStreakCmd   `cmd:"" help:"Dump streak state as JSON."`
	DumpEntry    *DebugDumpEntryCmd    `cmd:"" help:"Dump a journal entry as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"data_dir": ctx.DataDir,
		"backend":  ctx.Store.Backend(),
		"store":    ctx.Store.GetConfigPath(),
		"config":   config.Path(ctx.DataDir),
		"log":      logger.Path(ctx.DataDir),
	})
}

type DebugDumpStreakCmd struct{}

func (cmd *DebugDumpStreakCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.LoadStreak()
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}

	now := ctx.Clock.Now()
	return printJSON(ctx, map[string]interface{}{
		"streak":            state.Streak,
		"goal_days":         state.GoalDays,
		"last_goal_start":   utils.FormatTimestamp(state.LastGoalStart),
		"goal_end":          utils.FormatTimestamp(streak.GoalEnd(state)),
		"remaining_seconds": int64(streak.Remaining(state, now).Seconds()),
		"phase":             streak.Evaluate(state, now).String(),
	})
}

type DebugDumpEntryCmd struct {
	Key string `arg:"" help:"Entry id, id prefix or timestamp."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Journal().Find(cmd.Key)
	if err != nil {
		return err
	}
	return printJSON(ctx, e)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, ctx.Settings)
}
