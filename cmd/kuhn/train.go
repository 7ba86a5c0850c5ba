package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/lox/kuhnsolver/internal/config"
	"github.com/lox/kuhnsolver/internal/report"
	"github.com/lox/kuhnsolver/sdk/solver"
)

// errInterrupted reports that the user stopped training early. Commands treat
// it as a clean exit.
var errInterrupted = errors.New("training interrupted")

type TrainCmd struct {
	Iterations    int    `help:"number of CFR iterations (0 uses config)" default:"0"`
	ProgressEvery int    `help:"log progress every N iterations (0 uses config, which defaults to iterations/10)" default:"0"`
	Weighting     string `help:"regret weighting: reach or none (empty uses config)"`
	Style         string `help:"report style: plain or pretty (empty uses config)"`
	TUI           bool   `name:"tui" help:"show a progress bar instead of progress logs"`
}

func (cmd *TrainCmd) apply(cfg *config.Config) {
	if cmd.Iterations > 0 {
		cfg.Training.Iterations = cmd.Iterations
	}
	if cmd.ProgressEvery > 0 {
		cfg.Training.ProgressEvery = cmd.ProgressEvery
	}
	if cmd.Weighting != "" {
		cfg.Training.Weighting = cmd.Weighting
	}
	if cmd.Style != "" {
		cfg.Report.Style = cmd.Style
	}
}

func (cmd *TrainCmd) Run(rc *runContext) error {
	cmd.apply(rc.config)
	if err := rc.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	trainer, err := train(rc, cmd.TUI)
	if errors.Is(err, errInterrupted) {
		return nil
	}
	if err != nil {
		return err
	}
	bp := trainer.Blueprint()

	out := os.Stdout
	if err := report.RenderSummary(out, trainer.Store().Size()); err != nil {
		return err
	}
	if err := renderBlueprint(out, bp, rc.config.Report.Style); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	rc.logger.Info().
		Str("run_id", bp.RunID).
		Int("iterations", bp.Iterations).
		Float64("game_value", bp.GameValue()).
		Msg("training finished")
	return nil
}

// train builds a trainer from the validated configuration and runs it to
// completion, reporting progress through logs or the progress bar.
func train(rc *runContext, tui bool) (*solver.Trainer, error) {
	trainCfg, err := rc.config.TrainingConfig()
	if err != nil {
		return nil, err
	}
	trainer, err := solver.NewTrainer(trainCfg)
	if err != nil {
		return nil, fmt.Errorf("create trainer: %w", err)
	}

	rc.logger.Info().
		Str("run_id", trainer.RunID()).
		Int("iterations", trainCfg.Iterations).
		Str("weighting", trainCfg.Weighting.String()).
		Msg("Training Kuhn Poker GTO strategy")

	if tui {
		err = trainWithProgressBar(rc.ctx, trainer)
	} else {
		err = trainer.Run(rc.ctx, logProgress(rc.logger))
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			rc.logger.Warn().Int("iteration", trainer.Iteration()).Msg("training interrupted")
			return nil, fmt.Errorf("%w: %w", errInterrupted, err)
		}
		return nil, fmt.Errorf("training failed: %w", err)
	}
	return trainer, nil
}

func renderBlueprint(w io.Writer, bp *solver.Blueprint, style string) error {
	if style == config.StylePretty {
		return report.RenderStyled(w, bp, termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
	return report.Render(w, bp)
}
