package runtime

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/sdk/solver"
)

// Policy exposes read-only access to a solver blueprint for sampling actions
// during play.
type Policy struct {
	blueprint *solver.Blueprint
}

// New constructs a runtime policy over bp.
func New(bp *solver.Blueprint) (*Policy, error) {
	if bp == nil {
		return nil, errors.New("nil blueprint")
	}
	return &Policy{blueprint: bp}, nil
}

// Blueprint returns the underlying blueprint (read-only).
func (p *Policy) Blueprint() *solver.Blueprint {
	if p == nil {
		return nil
	}
	return p.blueprint
}

// ActionWeights returns the stored probability of each legal action at key.
// When the key is missing, a uniform policy is returned to guarantee a valid
// distribution.
func (p *Policy) ActionWeights(key solver.InfoSetKey, actions []kuhn.Action) ([]float64, error) {
	if p == nil || p.blueprint == nil {
		return nil, errors.New("nil policy")
	}
	if len(actions) == 0 {
		return nil, errors.New("no legal actions")
	}
	return p.blueprint.Probabilities(key, actions), nil
}

// Sample draws an action for the player to act in state holding card.
func (p *Policy) Sample(rng *rand.Rand, state kuhn.GameState, card kuhn.Card) (kuhn.Action, error) {
	actions := state.LegalActions()
	weights, err := p.ActionWeights(solver.InfoSetKey{Card: card, History: state.History}, actions)
	if err != nil {
		return 0, err
	}
	return pick(rng, actions, weights)
}

func pick(rng *rand.Rand, actions []kuhn.Action, weights []float64) (kuhn.Action, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("negative action weight %v", w)
		}
		total += w
	}
	if total <= 0 {
		return actions[rng.IntN(len(actions))], nil
	}
	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return actions[i], nil
		}
	}
	return actions[len(actions)-1], nil
}
