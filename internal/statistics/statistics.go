package statistics

import (
	"fmt"
	"math"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// HandResult represents the outcome of a single hand for the hero.
type HandResult struct {
	Net      float64     // Chips won or lost by the hero
	Seat     kuhn.Player // Seat the hero played from
	Deal     kuhn.Deal
	Showdown bool // Did the hand reach a showdown?
}

// SeatStats tracks results for one seat.
type SeatStats struct {
	Hands int
	Sum   float64
	SumSq float64
}

// Mean returns the average result from this seat.
func (s SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Statistics aggregates simulated hand results.
type Statistics struct {
	Hands int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation

	ShowdownWins    int
	NonShowdownWins int
	ShowdownNet     float64 // wins and losses at showdown
	NonShowdownNet  float64 // wins and losses by fold
	AllNet          float64 // total for the ledger check

	Seats [2]SeatStats
}

// Mean returns the arithmetic mean result in chips per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a hand result.
func (s *Statistics) Add(result HandResult) {
	net := result.Net
	s.Hands++
	s.Sum += net
	s.SumSq += net * net

	if net > 0 {
		if result.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Showdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net

	seat := &s.Seats[result.Seat]
	seat.Hands++
	seat.Sum += net
	seat.SumSq += net * net
}

// Merge folds the results of another batch into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownNet += other.ShowdownNet
	s.NonShowdownNet += other.NonShowdownNet
	s.AllNet += other.AllNet
	for i := range s.Seats {
		s.Seats[i].Hands += other.Seats[i].Hands
		s.Seats[i].Sum += other.Seats[i].Sum
		s.Seats[i].SumSq += other.Seats[i].SumSq
	}
}

// IsLedgerBalanced checks that showdown and fold results add up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate performs consistency checks on the aggregated data.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	if seats := s.Seats[0].Hands + s.Seats[1].Hands; seats != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seats, s.Hands)
	}
	return nil
}
