package solver

import (
	"sort"
	"time"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// Distribution is a probability vector aligned with Actions.
type Distribution struct {
	Actions       []kuhn.Action
	Probabilities []float64
}

// Prob returns the probability assigned to a, or 0 when a is not offered.
func (d Distribution) Prob(a kuhn.Action) float64 {
	for i, act := range d.Actions {
		if act == a {
			return d.Probabilities[i]
		}
	}
	return 0
}

// Blueprint captures the averaged strategies of a solver run so that
// evaluation and reporting can read them without touching the live store.
// It is held in memory only and is safe for concurrent readers.
type Blueprint struct {
	RunID       string
	GeneratedAt time.Time
	Iterations  int
	Strategies  map[string]Distribution
}

// NewBlueprint snapshots the average strategy of every node in store.
func NewBlueprint(store *Store) *Blueprint {
	bp := &Blueprint{Strategies: make(map[string]Distribution, store.Size())}
	for _, key := range store.Keys() {
		node := store.Get(key)
		bp.Strategies[key] = Distribution{
			Actions:       append([]kuhn.Action(nil), node.Actions...),
			Probabilities: node.AverageStrategy(),
		}
	}
	return bp
}

// UniformBlueprint returns a blueprint that mixes uniformly at every
// information set of the game.
func UniformBlueprint() *Blueprint {
	bp := &Blueprint{Strategies: make(map[string]Distribution)}
	kuhn.Walk(func(s kuhn.GameState) {
		if s.Terminal {
			return
		}
		actions := s.LegalActions()
		for _, c := range kuhn.Cards {
			key := InfoSetKey{Card: c, History: s.History}
			bp.Strategies[key.String()] = Distribution{Actions: actions, Probabilities: uniform(len(actions))}
		}
	})
	return bp
}

// Strategy returns the stored distribution for key.
func (b *Blueprint) Strategy(key InfoSetKey) (Distribution, bool) {
	if b == nil {
		return Distribution{}, false
	}
	d, ok := b.Strategies[key.String()]
	return d, ok
}

// Probabilities returns the probability of each of actions at key. Unknown
// keys fall back to a uniform distribution.
func (b *Blueprint) Probabilities(key InfoSetKey, actions []kuhn.Action) []float64 {
	d, ok := b.Strategy(key)
	if !ok {
		return uniform(len(actions))
	}
	out := make([]float64, len(actions))
	for i, a := range actions {
		out[i] = d.Prob(a)
	}
	return out
}

// Keys returns the stored info-set keys in sorted order.
func (b *Blueprint) Keys() []string {
	keys := make([]string, 0, len(b.Strategies))
	for k := range b.Strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GameValue returns Player1's expected payoff when both seats follow the
// blueprint, averaged over all deals. At equilibrium this is -1/18.
func (b *Blueprint) GameValue() float64 {
	deals := kuhn.Deals()
	total := 0.0
	for _, d := range deals {
		total += b.expectedValue(kuhn.NewGameState(), d)
	}
	return total / float64(len(deals))
}

func (b *Blueprint) expectedValue(state kuhn.GameState, deal kuhn.Deal) float64 {
	if state.Terminal {
		return float64(kuhn.Payoff(deal.P1, deal.P2, state.History))
	}
	actions := state.LegalActions()
	probs := b.Probabilities(KeyFor(state, deal), actions)
	value := 0.0
	for i, a := range actions {
		if probs[i] == 0 {
			continue
		}
		value += probs[i] * b.expectedValue(state.NextState(a), deal)
	}
	return value
}
