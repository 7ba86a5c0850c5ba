package solver

import "errors"

// TrainingConfig aggregates parameters that control a CFR run.
type TrainingConfig struct {
	// Iterations is the number of passes over all six deals.
	Iterations int

	// ProgressEvery controls how often the progress callback fires. Zero
	// reports every tenth of the run.
	ProgressEvery int

	// Weighting selects the regret update. The zero value is the unweighted
	// update used by Train.
	Weighting Weighting
}

// Validate ensures the training parameters are safe to use.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	if c.Weighting > WeightingReach {
		return errors.New("invalid regret weighting")
	}
	return nil
}

func (c TrainingConfig) progressBatch() int {
	if c.ProgressEvery > 0 {
		return c.ProgressEvery
	}
	batch := c.Iterations / 10
	if batch == 0 {
		batch = 1
	}
	return batch
}

// DefaultTrainingConfig returns the configuration used by the CLI when no
// overrides are given.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:    10000,
		ProgressEvery: 0,
		Weighting:     WeightingReach,
	}
}
