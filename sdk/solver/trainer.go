package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// Progress contains metadata emitted while training.
type Progress struct {
	Iteration  int
	Iterations int
	InfoSets   int
	Stats      TraversalStats
	Elapsed    time.Duration
}

// Fraction returns how much of the run has completed, in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Iterations <= 0 {
		return 0
	}
	return float64(p.Iteration) / float64(p.Iterations)
}

// Train runs iterations passes of unweighted CFR over every deal against a
// fresh store and returns it. Deals are visited in kuhn.Deals order, so two runs with the
// same iteration count produce identical stores.
func Train(iterations int) *Store {
	if iterations <= 0 {
		panic(fmt.Sprintf("solver: iterations must be positive, got %d", iterations))
	}
	store := NewStore()
	deals := kuhn.Deals()
	for i := 0; i < iterations; i++ {
		for _, d := range deals {
			CFR(kuhn.NewGameState(), d.P1, d.P2, store)
		}
	}
	return store
}

// Option customises a Trainer.
type Option func(*Trainer)

// WithClock replaces the wall clock used for elapsed-time reporting.
func WithClock(clock quartz.Clock) Option {
	return func(t *Trainer) {
		t.clock = clock
	}
}

// Trainer drives CFR iterations and owns the info-set store for the whole run.
// It is not safe for concurrent use.
type Trainer struct {
	cfg       TrainingConfig
	store     *Store
	deals     []kuhn.Deal
	iteration int
	stats     TraversalStats
	clock     quartz.Clock
	runID     string
}

// NewTrainer constructs a trainer for cfg.
func NewTrainer(cfg TrainingConfig, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Trainer{
		cfg:   cfg,
		store: NewStore(),
		deals: kuhn.Deals(),
		clock: quartz.NewReal(),
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Run executes the remaining iterations. The context is checked between
// iterations; a traversal is never interrupted half way. progress may be nil.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	start := t.clock.Now()
	batch := t.cfg.progressBatch()

	for t.iteration < t.cfg.Iterations {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t.stats = t.singleIteration()
		t.iteration++

		if progress != nil && (t.iteration%batch == 0 || t.iteration == t.cfg.Iterations) {
			progress(Progress{
				Iteration:  t.iteration,
				Iterations: t.cfg.Iterations,
				InfoSets:   t.store.Size(),
				Stats:      t.stats,
				Elapsed:    t.clock.Since(start),
			})
		}
	}
	return nil
}

func (t *Trainer) singleIteration() TraversalStats {
	var stats TraversalStats
	for _, d := range t.deals {
		CFRWithOptions(kuhn.NewGameState(), d, t.store, t.cfg.Weighting, &stats)
	}
	return stats
}

// Store returns the info-set store. Callers must not mutate it while Run is
// in progress.
func (t *Trainer) Store() *Store {
	return t.store
}

// Blueprint freezes the current average strategy.
func (t *Trainer) Blueprint() *Blueprint {
	bp := NewBlueprint(t.store)
	bp.RunID = t.runID
	bp.Iterations = t.iteration
	bp.GeneratedAt = t.clock.Now().UTC()
	return bp
}

// Stats returns the traversal statistics of the latest iteration.
func (t *Trainer) Stats() TraversalStats {
	return t.stats
}

// RunID identifies this training run in logs and blueprints.
func (t *Trainer) RunID() string {
	return t.runID
}

// Iteration returns the number of completed iterations.
func (t *Trainer) Iteration() int {
	return t.iteration
}

// TrainingConfig returns the configuration in effect, including any changes
// made through the setters.
func (t *Trainer) TrainingConfig() TrainingConfig {
	return t.cfg
}

// SetTotalIterations extends or shortens the run before the next call to Run.
func (t *Trainer) SetTotalIterations(n int) error {
	if n < t.iteration {
		return fmt.Errorf("total iterations %d less than completed %d", n, t.iteration)
	}
	t.cfg.Iterations = n
	return nil
}

// SetProgressEvery changes how often Run reports progress. Zero restores the
// default of a tenth of the run.
func (t *Trainer) SetProgressEvery(n int) {
	if n < 0 {
		n = 0
	}
	t.cfg.ProgressEvery = n
}
