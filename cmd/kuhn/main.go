package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/kuhnsolver/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Debug    bool             `help:"enable debug logging"`
	JSONLogs bool             `name:"json-logs" help:"emit structured JSON logs"`
	Config   string           `short:"c" help:"path to an HCL configuration file" type:"path"`

	Train TrainCmd `cmd:"" help:"train a Kuhn poker strategy with CFR and print it"`
	Eval  EvalCmd  `cmd:"" help:"train, then measure exploitability and simulate against a baseline bot"`
}

// runContext carries what every command needs.
type runContext struct {
	ctx    context.Context
	logger zerolog.Logger
	config *config.Config
	debug  bool
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("kuhn"),
		kong.Description("Counterfactual regret minimization solver for Kuhn poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	var logger zerolog.Logger
	if cli.JSONLogs {
		logger = setupStructuredLogger(cli.Debug)
	} else {
		logger = setupLogger(cli.Debug)
	}

	cfg := config.Default()
	if cli.Config != "" {
		var err error
		cfg, err = config.Load(cli.Config)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cli.Config).Msg("failed to load config")
		}
		logger.Debug().Str("path", cli.Config).Msg("loaded config")
	}

	rc := &runContext{
		ctx:    setupSignalHandler(logger),
		logger: logger,
		config: cfg,
		debug:  cli.Debug,
	}
	if err := kctx.Run(rc); err != nil {
		logger.Fatal().Err(err).Msgf("%s failed", kctx.Command())
	}
}
