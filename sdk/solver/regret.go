package solver

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// InfoSetKey identifies what the acting player knows: their own card and the
// public betting so far. The opponent's card is deliberately absent, so every
// deal that shares card and history collapses onto the same key.
type InfoSetKey struct {
	Card    kuhn.Card
	History kuhn.History
}

func (k InfoSetKey) String() string {
	h := k.History.String()
	if h == "" {
		return k.Card.String()
	}
	return k.Card.String() + kuhn.HistorySeparator + h
}

// KeyFor returns the info-set key of the player to act in state.
func KeyFor(state kuhn.GameState, deal kuhn.Deal) InfoSetKey {
	return InfoSetKey{Card: deal.Card(state.CurrentPlayer), History: state.History}
}

// Node accumulates regrets and strategy weight for one information set. The
// sums are indexed parallel to Actions, which is fixed at creation.
type Node struct {
	Actions     []kuhn.Action
	RegretSum   []float64
	StrategySum []float64
}

// NewNode returns a zeroed node over actions.
func NewNode(actions []kuhn.Action) *Node {
	if len(actions) == 0 {
		panic("solver: node requires at least one action")
	}
	return &Node{
		Actions:     append([]kuhn.Action(nil), actions...),
		RegretSum:   make([]float64, len(actions)),
		StrategySum: make([]float64, len(actions)),
	}
}

// Strategy returns the current regret-matching distribution.
func (n *Node) Strategy() []float64 {
	strat := make([]float64, len(n.RegretSum))
	for i, r := range n.RegretSum {
		if r > 0 {
			strat[i] = r
		}
	}
	total := floats.Sum(strat)
	if total <= 0 {
		return uniform(len(strat))
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// AverageStrategy returns the normalised strategy sum. This is the quantity
// that converges to equilibrium.
func (n *Node) AverageStrategy() []float64 {
	total := floats.Sum(n.StrategySum)
	if total <= 0 {
		return uniform(len(n.StrategySum))
	}
	strat := make([]float64, len(n.StrategySum))
	for i, v := range n.StrategySum {
		strat[i] = v / total
	}
	return strat
}

// Update adds regret and strategy increments. Both slices must be aligned with
// Actions.
func (n *Node) Update(regret, strategy []float64) {
	if len(regret) != len(n.Actions) || len(strategy) != len(n.Actions) {
		panic(fmt.Sprintf("solver: update size mismatch: %d actions, %d regrets, %d probabilities",
			len(n.Actions), len(regret), len(strategy)))
	}
	floats.Add(n.RegretSum, regret)
	floats.Add(n.StrategySum, strategy)
}

// Regret returns the accumulated regret for a.
func (n *Node) Regret(a kuhn.Action) float64 {
	return n.RegretSum[n.index(a)]
}

func (n *Node) index(a kuhn.Action) int {
	for i, act := range n.Actions {
		if act == a {
			return i
		}
	}
	panic(fmt.Sprintf("solver: action %s not in node actions %v", a, n.Actions))
}

func uniform(n int) []float64 {
	strat := make([]float64, n)
	floats.AddConst(1/float64(n), strat)
	return strat
}

// Store maps info-set keys to nodes. It has a single writer, the current CFR
// call chain, and carries no locks.
type Store struct {
	nodes map[string]*Node
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]*Node)}
}

// GetOrCreate returns the node for key, creating it over actions on first
// visit. Actions passed on later visits are ignored.
func (s *Store) GetOrCreate(key InfoSetKey, actions []kuhn.Action) *Node {
	k := key.String()
	if node, ok := s.nodes[k]; ok {
		return node
	}
	node := NewNode(actions)
	s.nodes[k] = node
	return node
}

// Get returns the node stored under key. A missing key is a programming error.
func (s *Store) Get(key string) *Node {
	node, ok := s.nodes[key]
	if !ok {
		panic(fmt.Sprintf("solver: info set %q not in store", key))
	}
	return node
}

// Lookup returns the node stored under key, if present.
func (s *Store) Lookup(key string) (*Node, bool) {
	node, ok := s.nodes[key]
	return node, ok
}

// Keys returns all info-set keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.nodes))
	for k := range s.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of info sets tracked.
func (s *Store) Size() int {
	return len(s.nodes)
}
