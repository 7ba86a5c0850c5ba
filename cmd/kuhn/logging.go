package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/kuhnsolver/sdk/solver"
)

// setupLogger configures zerolog with pretty console output
func setupLogger(debug bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel(debug)).
		With().
		Timestamp().
		Logger()
}

// setupStructuredLogger configures zerolog for structured (JSON) output
func setupStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stderr).
		Level(logLevel(debug)).
		With().
		Timestamp().
		Logger()
}

func logLevel(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger zerolog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down gracefully")
		cancel()
	}()

	return ctx
}

func logProgress(logger zerolog.Logger) func(solver.Progress) {
	return func(p solver.Progress) {
		logger.Info().
			Int("iteration", p.Iteration).
			Int("iterations", p.Iterations).
			Int("infosets", p.InfoSets).
			Int64("nodes", p.Stats.NodesVisited).
			Int64("terminals", p.Stats.TerminalNodes).
			Int("max_depth", p.Stats.MaxDepth).
			Dur("elapsed", p.Elapsed).
			Msg("training progress")
	}
}
