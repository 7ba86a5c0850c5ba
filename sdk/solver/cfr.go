package solver

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// Weighting selects how regret and strategy increments are scaled.
type Weighting uint8

const (
	// WeightingNone adds raw (action value - node value) regrets and raw
	// strategy probabilities. It does not reach an equilibrium: a hand with no
	// showdown value never learns to bluff.
	WeightingNone Weighting = iota
	// WeightingReach scales regrets by the opponent's reach probability and
	// strategy sums by the acting player's own reach, as in vanilla CFR.
	WeightingReach
)

func (w Weighting) String() string {
	switch w {
	case WeightingNone:
		return "none"
	case WeightingReach:
		return "reach"
	default:
		return "unknown"
	}
}

// ParseWeighting converts a CLI or config value into a Weighting.
func ParseWeighting(s string) (Weighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "unweighted":
		return WeightingNone, nil
	case "", "reach":
		return WeightingReach, nil
	default:
		return WeightingReach, fmt.Errorf("unknown weighting %q", s)
	}
}

// TraversalStats captures instrumentation for one or more CFR traversals.
type TraversalStats struct {
	NodesVisited  int64
	TerminalNodes int64
	MaxDepth      int
}

// Add folds other into s.
func (s *TraversalStats) Add(other TraversalStats) {
	s.NodesVisited += other.NodesVisited
	s.TerminalNodes += other.TerminalNodes
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
}

// CFR walks the subtree below state for one deal, updating regrets and
// strategy sums in store, and returns the expected value for Player1.
//
// Every action is explored at every node. Increments are unweighted: regret is
// action value minus node value and the strategy sum grows by the current
// probability. Use CFRWithOptions with WeightingReach for vanilla CFR.
func CFR(state kuhn.GameState, c1, c2 kuhn.Card, store *Store) float64 {
	return CFRWithOptions(state, kuhn.Deal{P1: c1, P2: c2}, store, WeightingNone, nil)
}

// CFRWithOptions is CFR with a selectable weighting. When stats is non-nil,
// node counters are accumulated into it.
func CFRWithOptions(state kuhn.GameState, deal kuhn.Deal, store *Store, weighting Weighting, stats *TraversalStats) float64 {
	t := traversal{deal: deal, store: store, weighting: weighting, stats: stats}
	return t.walk(state, 0, [2]float64{1, 1})
}

type traversal struct {
	deal      kuhn.Deal
	store     *Store
	weighting Weighting
	stats     *TraversalStats
}

func (t *traversal) walk(state kuhn.GameState, depth int, reach [2]float64) float64 {
	if depth > kuhn.MaxDepth {
		panic(fmt.Sprintf("solver: traversal depth %d exceeds game bound %d at %q", depth, kuhn.MaxDepth, state.History))
	}
	if t.stats != nil {
		t.stats.NodesVisited++
		if depth > t.stats.MaxDepth {
			t.stats.MaxDepth = depth
		}
	}

	if state.Terminal {
		if t.stats != nil {
			t.stats.TerminalNodes++
		}
		return float64(kuhn.Payoff(t.deal.P1, t.deal.P2, state.History))
	}

	actor := state.CurrentPlayer
	node := t.store.GetOrCreate(KeyFor(state, t.deal), state.LegalActions())
	strategy := node.Strategy()
	sign := actor.Sign()

	util := make([]float64, len(node.Actions))
	for i, a := range node.Actions {
		next := reach
		next[actor] *= strategy[i]
		util[i] = sign * t.walk(state.NextState(a), depth+1, next)
	}
	nodeUtil := floats.Dot(strategy, util)

	regretWeight, strategyWeight := 1.0, 1.0
	if t.weighting == WeightingReach {
		regretWeight = reach[actor.Other()]
		strategyWeight = reach[actor]
	}

	regrets := make([]float64, len(util))
	weighted := make([]float64, len(strategy))
	for i := range util {
		regrets[i] = regretWeight * (util[i] - nodeUtil)
		weighted[i] = strategyWeight * strategy[i]
	}
	node.Update(regrets, weighted)

	return sign * nodeUtil
}
