package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/internal/randutil"
	"github.com/lox/kuhnsolver/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Hands   int
	Seed    int64
	Mirror  bool // replay every deal with the hero in the other seat
	Workers int
	Logger  *log.Logger
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if c.Hands <= 0 {
		return fmt.Errorf("hands must be positive (got %d)", c.Hands)
	}
	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	return nil
}

// Simulator plays seeded hands between a hero and an opponent agent.
type Simulator struct {
	config   Config
	hero     Agent
	opponent Agent
}

// New creates a new simulator with the given configuration
func New(config Config, hero, opponent Agent) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Simulator{config: config, hero: hero, opponent: opponent}
}

// Run executes the simulation and returns the hero's results. Hands are split
// into one batch per worker and every batch owns a generator derived from the
// seed, so results depend only on the configuration.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	workers := min(s.config.Workers, s.config.Hands)
	batches := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		first, last := batchBounds(s.config.Hands, workers, w)
		g.Go(func() error {
			stats, err := s.runBatch(ctx, w, first, last)
			if err != nil {
				return fmt.Errorf("batch %d: %w", w, err)
			}
			batches[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, b := range batches {
		total.Merge(b)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func batchBounds(hands, workers, w int) (int, int) {
	size := hands / workers
	extra := hands % workers
	first := w*size + min(w, extra)
	last := first + size
	if w < extra {
		last++
	}
	return first, last
}

func (s *Simulator) runBatch(ctx context.Context, batch, first, last int) (*statistics.Statistics, error) {
	rng := randutil.New(randutil.Derive(s.config.Seed, batch))
	deals := kuhn.Deals()
	stats := &statistics.Statistics{}

	for hand := first; hand < last; hand++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		deal := deals[rng.IntN(len(deals))]
		// Alternate seats to cancel the positional edge.
		seat := kuhn.Player(hand % 2)
		result, err := s.playHand(rng, deal, seat)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand, err)
		}
		stats.Add(result)

		if s.config.Mirror {
			mirrored, err := s.playHand(rng, deal, seat.Other())
			if err != nil {
				return nil, fmt.Errorf("mirrored hand %d: %w", hand, err)
			}
			stats.Add(mirrored)
		}
	}

	s.config.Logger.Debug("batch complete", "batch", batch, "hands", stats.Hands, "mean", stats.Mean())
	return stats, nil
}

// playHand plays one hand with the hero in seat and returns the hero's result.
func (s *Simulator) playHand(rng *rand.Rand, deal kuhn.Deal, seat kuhn.Player) (statistics.HandResult, error) {
	state := kuhn.NewGameState()
	for !state.Terminal {
		agent := s.opponent
		if state.CurrentPlayer == seat {
			agent = s.hero
		}
		action, err := agent.Act(rng, state, deal.Card(state.CurrentPlayer))
		if err != nil {
			return statistics.HandResult{}, fmt.Errorf("%s: %w", agent.Name(), err)
		}
		if !state.IsLegal(action) {
			return statistics.HandResult{}, fmt.Errorf("%s played illegal %s at %q", agent.Name(), action, state.History)
		}
		state = state.NextState(action)
	}

	last, _ := state.History.Last()
	payoff := kuhn.Payoff(deal.P1, deal.P2, state.History)
	return statistics.HandResult{
		Net:      seat.Sign() * float64(payoff),
		Seat:     seat,
		Deal:     deal,
		Showdown: last != kuhn.Fold,
	}, nil
}

// PrintSummary writes a summary of simulation results.
func PrintSummary(w io.Writer, stats *statistics.Statistics, hero, opponent string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s vs %s ===\n", hero, opponent)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)
	fmt.Fprintf(w, "Mean: %.4f chips/hand\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/hand\n", low, high)
	for i, seat := range stats.Seats {
		fmt.Fprintf(w, "%s: %d hands, %.4f chips/hand\n", kuhn.Player(i), seat.Hands, seat.Mean())
	}

	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(wins)*100)
	}
}
