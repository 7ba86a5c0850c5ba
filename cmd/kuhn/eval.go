package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/kuhnsolver/internal/config"
	"github.com/lox/kuhnsolver/internal/simulator"
	"github.com/lox/kuhnsolver/sdk/solver"
	"github.com/lox/kuhnsolver/sdk/solver/runtime"
)

type EvalCmd struct {
	Iterations int    `help:"number of CFR iterations before evaluating (0 uses config)" default:"0"`
	Hands      int    `help:"number of hands to simulate (0 uses config)" default:"0"`
	Opponent   string `help:"baseline opponent: blueprint, always-call, always-bet or random (empty uses config)"`
	Seed       int64  `help:"random seed (0 uses config, where seed = 0 may be set explicitly)" default:"0"`
	Mirror     bool   `help:"replay every deal with the hero in the other seat to reduce variance"`
	Workers    int    `help:"number of parallel simulation batches (0 uses config)" default:"0"`
	Uniform    bool   `help:"evaluate a uniform random strategy instead of training"`
}

func (cmd *EvalCmd) apply(cfg *config.Config) {
	if cmd.Iterations > 0 {
		cfg.Training.Iterations = cmd.Iterations
	}
	if cmd.Hands > 0 {
		cfg.Eval.Hands = cmd.Hands
	}
	if cmd.Opponent != "" {
		cfg.Eval.Opponent = cmd.Opponent
	}
	if cmd.Seed != 0 {
		seed := cmd.Seed
		cfg.Eval.Seed = &seed
	}
	if cmd.Mirror {
		cfg.Eval.Mirror = true
	}
	if cmd.Workers > 0 {
		cfg.Eval.Workers = cmd.Workers
	}
}

func (cmd *EvalCmd) Run(rc *runContext) error {
	cmd.apply(rc.config)
	if err := rc.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var bp *solver.Blueprint
	if cmd.Uniform {
		bp = solver.UniformBlueprint()
	} else {
		trainer, err := train(rc, false)
		if errors.Is(err, errInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}
		bp = trainer.Blueprint()
	}

	exploit, err := solver.Exploitability(rc.ctx, bp)
	if err != nil {
		return fmt.Errorf("exploitability: %w", err)
	}
	rc.logger.Info().
		Float64("br_p1", exploit.BestResponse[0]).
		Float64("br_p2", exploit.BestResponse[1]).
		Float64("exploitability", exploit.Exploitability).
		Float64("game_value", bp.GameValue()).
		Msg("blueprint evaluated")

	policy, err := runtime.New(bp)
	if err != nil {
		return err
	}
	hero, err := simulator.NewAgent(simulator.AgentBlueprint, policy)
	if err != nil {
		return err
	}
	opponent, err := simulator.NewAgent(rc.config.Eval.Opponent, policy)
	if err != nil {
		return err
	}

	level := log.WarnLevel
	if rc.debug {
		level = log.DebugLevel
	}
	eval := rc.config.Eval
	sim := simulator.New(simulator.Config{
		Hands:   eval.Hands,
		Seed:    eval.SeedValue(),
		Mirror:  eval.Mirror,
		Workers: eval.Workers,
		Logger:  log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "simulator"}),
	}, hero, opponent)

	stats, err := sim.Run(rc.ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== EXPLOITABILITY ===\n")
	fmt.Fprintf(os.Stdout, "Best response P1: %.4f chips/hand\n", exploit.BestResponse[0])
	fmt.Fprintf(os.Stdout, "Best response P2: %.4f chips/hand\n", exploit.BestResponse[1])
	fmt.Fprintf(os.Stdout, "Exploitability: %.4f chips/hand\n", exploit.Exploitability)
	fmt.Fprintf(os.Stdout, "Game value (P1): %.4f chips/hand\n", bp.GameValue())
	simulator.PrintSummary(os.Stdout, stats, hero.Name(), opponent.Name())
	return nil
}
