package simulator

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/sdk/solver/runtime"
)

// Agent chooses an action for the player to act.
type Agent interface {
	Name() string
	Act(rng *rand.Rand, state kuhn.GameState, card kuhn.Card) (kuhn.Action, error)
}

// Agent names accepted by NewAgent.
const (
	AgentBlueprint = "blueprint"
	AgentCall      = "always-call"
	AgentBet       = "always-bet"
	AgentRandom    = "random"
)

// AgentNames lists the built-in agents.
var AgentNames = []string{AgentBlueprint, AgentCall, AgentBet, AgentRandom}

// NewAgent builds a named agent. The blueprint agent requires a policy.
func NewAgent(name string, policy *runtime.Policy) (Agent, error) {
	switch name {
	case AgentBlueprint:
		if policy == nil {
			return nil, fmt.Errorf("agent %q requires a policy", name)
		}
		return policyAgent{policy: policy}, nil
	case AgentCall:
		return passiveAgent{}, nil
	case AgentBet:
		return aggressiveAgent{}, nil
	case AgentRandom:
		return randomAgent{}, nil
	default:
		return nil, fmt.Errorf("unknown agent %q", name)
	}
}

type policyAgent struct {
	policy *runtime.Policy
}

func (a policyAgent) Name() string { return AgentBlueprint }

func (a policyAgent) Act(rng *rand.Rand, state kuhn.GameState, card kuhn.Card) (kuhn.Action, error) {
	return a.policy.Sample(rng, state, card)
}

// passiveAgent never bets but calls every bet.
type passiveAgent struct{}

func (passiveAgent) Name() string { return AgentCall }

func (passiveAgent) Act(_ *rand.Rand, state kuhn.GameState, _ kuhn.Card) (kuhn.Action, error) {
	return prefer(state, kuhn.Check, kuhn.Call)
}

// aggressiveAgent bets whenever it can and calls otherwise.
type aggressiveAgent struct{}

func (aggressiveAgent) Name() string { return AgentBet }

func (aggressiveAgent) Act(_ *rand.Rand, state kuhn.GameState, _ kuhn.Card) (kuhn.Action, error) {
	return prefer(state, kuhn.Bet, kuhn.Call)
}

type randomAgent struct{}

func (randomAgent) Name() string { return AgentRandom }

func (randomAgent) Act(rng *rand.Rand, state kuhn.GameState, _ kuhn.Card) (kuhn.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return 0, fmt.Errorf("no legal actions at %q", state.History)
	}
	return actions[rng.IntN(len(actions))], nil
}

func prefer(state kuhn.GameState, choices ...kuhn.Action) (kuhn.Action, error) {
	for _, a := range choices {
		if state.IsLegal(a) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("none of %v legal at %q", choices, state.History)
}
