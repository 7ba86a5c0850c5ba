package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/kuhnsolver/internal/simulator"
	"github.com/lox/kuhnsolver/sdk/solver"
)

// Report styles.
const (
	StylePlain  = "plain"
	StylePretty = "pretty"
)

// Config represents the complete solver configuration
type Config struct {
	Training *TrainingSettings `hcl:"training,block"`
	Report   *ReportSettings   `hcl:"report,block"`
	Eval     *EvalSettings     `hcl:"eval,block"`
}

// TrainingSettings controls the CFR run
type TrainingSettings struct {
	Iterations    int    `hcl:"iterations,optional"`
	ProgressEvery int    `hcl:"progress_every,optional"`
	Weighting     string `hcl:"weighting,optional"`
}

// ReportSettings controls how the final strategy is printed
type ReportSettings struct {
	Style string `hcl:"style,optional"`
}

// EvalSettings controls blueprint evaluation by simulation. Seed is a pointer
// so that an explicit seed of 0 is kept; a zero Workers count means the
// default.
type EvalSettings struct {
	Hands    int    `hcl:"hands,optional"`
	Seed     *int64 `hcl:"seed,optional"`
	Opponent string `hcl:"opponent,optional"`
	Mirror   bool   `hcl:"mirror,optional"`
	Workers  int    `hcl:"workers,optional"`
}

// DefaultSeed is the simulation seed used when none is configured.
const DefaultSeed int64 = 1

// SeedValue returns the configured seed, or DefaultSeed when unset.
func (e *EvalSettings) SeedValue() int64 {
	if e.Seed == nil {
		return DefaultSeed
	}
	return *e.Seed
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Training: &TrainingSettings{
			Iterations: 10000,
			Weighting:  solver.WeightingReach.String(),
		},
		Report: &ReportSettings{Style: StylePlain},
		Eval: &EvalSettings{
			Hands:    10000,
			Opponent: simulator.AgentCall,
			Workers:  4,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source held in memory.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Training == nil {
		c.Training = defaults.Training
	}
	if c.Training.Iterations == 0 {
		c.Training.Iterations = defaults.Training.Iterations
	}
	if c.Training.Weighting == "" {
		c.Training.Weighting = defaults.Training.Weighting
	}

	if c.Report == nil {
		c.Report = defaults.Report
	}
	if c.Report.Style == "" {
		c.Report.Style = defaults.Report.Style
	}

	if c.Eval == nil {
		c.Eval = defaults.Eval
	}
	if c.Eval.Hands == 0 {
		c.Eval.Hands = defaults.Eval.Hands
	}
	if c.Eval.Opponent == "" {
		c.Eval.Opponent = defaults.Eval.Opponent
	}
	if c.Eval.Workers == 0 {
		c.Eval.Workers = defaults.Eval.Workers
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Training == nil || c.Report == nil || c.Eval == nil {
		return errors.New("configuration is missing a block")
	}

	if _, err := c.TrainingConfig(); err != nil {
		return fmt.Errorf("training: %w", err)
	}

	if c.Report.Style != StylePlain && c.Report.Style != StylePretty {
		return fmt.Errorf("report: invalid style %q", c.Report.Style)
	}

	if c.Eval.Hands <= 0 {
		return fmt.Errorf("eval: hands must be positive")
	}
	if c.Eval.Workers < 0 {
		return fmt.Errorf("eval: workers cannot be negative")
	}
	if !slices.Contains(simulator.AgentNames, c.Eval.Opponent) {
		return fmt.Errorf("eval: invalid opponent %s", c.Eval.Opponent)
	}

	return nil
}

// TrainingConfig converts the training block into solver parameters.
func (c *Config) TrainingConfig() (solver.TrainingConfig, error) {
	weighting, err := solver.ParseWeighting(c.Training.Weighting)
	if err != nil {
		return solver.TrainingConfig{}, err
	}
	cfg := solver.TrainingConfig{
		Iterations:    c.Training.Iterations,
		ProgressEvery: c.Training.ProgressEvery,
		Weighting:     weighting,
	}
	if err := cfg.Validate(); err != nil {
		return solver.TrainingConfig{}, err
	}
	return cfg, nil
}
