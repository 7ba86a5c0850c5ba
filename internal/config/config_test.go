package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kuhnsolver/sdk/solver"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kuhn.hcl")
	src := `
training {
  iterations     = 2500
  progress_every = 100
  weighting      = "none"
}

report {
  style = "pretty"
}

eval {
  hands    = 400
  seed     = 42
  opponent = "random"
  mirror   = true
  workers  = 2
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2500, cfg.Training.Iterations)
	assert.Equal(t, 100, cfg.Training.ProgressEvery)
	assert.Equal(t, StylePretty, cfg.Report.Style)
	seed := int64(42)
	assert.Equal(t, &EvalSettings{Hands: 400, Seed: &seed, Opponent: "random", Mirror: true, Workers: 2}, cfg.Eval)

	training, err := cfg.TrainingConfig()
	require.NoError(t, err)
	assert.Equal(t, solver.TrainingConfig{Iterations: 2500, ProgressEvery: 100, Weighting: solver.WeightingNone}, training)
}

func TestParseAppliesDefaultsToPartialBlocks(t *testing.T) {
	cfg, err := Parse([]byte(`eval { hands = 50 }`), "partial.hcl")
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Training.Iterations)
	assert.Equal(t, "reach", cfg.Training.Weighting)
	assert.Equal(t, StylePlain, cfg.Report.Style)
	assert.Equal(t, 50, cfg.Eval.Hands)
	assert.Equal(t, "always-call", cfg.Eval.Opponent)
	assert.Equal(t, 4, cfg.Eval.Workers)
	assert.Nil(t, cfg.Eval.Seed)
	assert.Equal(t, DefaultSeed, cfg.Eval.SeedValue())
}

func TestParseKeepsExplicitZeroSeed(t *testing.T) {
	cfg, err := Parse([]byte(`eval { seed = 0 }`), "zero-seed.hcl")
	require.NoError(t, err)

	require.NotNil(t, cfg.Eval.Seed)
	assert.Equal(t, int64(0), cfg.Eval.SeedValue())
	require.NoError(t, cfg.Validate())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	_, err := Parse([]byte(`training { iterations = `), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`solver { threads = 4 }`), "unknown.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`training { iterations = "many" }`), "type.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative iterations", func(c *Config) { c.Training.Iterations = -1 }},
		{"negative progress", func(c *Config) { c.Training.ProgressEvery = -5 }},
		{"unknown weighting", func(c *Config) { c.Training.Weighting = "linear" }},
		{"unknown style", func(c *Config) { c.Report.Style = "html" }},
		{"zero hands", func(c *Config) { c.Eval.Hands = 0 }},
		{"negative workers", func(c *Config) { c.Eval.Workers = -1 }},
		{"unknown opponent", func(c *Config) { c.Eval.Opponent = "shark" }},
		{"missing block", func(c *Config) { c.Report = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
