package simulator

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/sdk/solver"
	"github.com/lox/kuhnsolver/sdk/solver/runtime"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&strings.Builder{}, log.Options{Level: log.WarnLevel})
}

func mustAgent(t *testing.T, name string, policy *runtime.Policy) Agent {
	t.Helper()
	agent, err := NewAgent(name, policy)
	if err != nil {
		t.Fatalf("NewAgent(%q) failed: %v", name, err)
	}
	return agent
}

func TestNewAgent(t *testing.T) {
	policy, err := runtime.New(solver.UniformBlueprint())
	if err != nil {
		t.Fatalf("runtime.New failed: %v", err)
	}

	for _, name := range AgentNames {
		agent, err := NewAgent(name, policy)
		if err != nil {
			t.Fatalf("NewAgent(%q) failed: %v", name, err)
		}
		if agent.Name() != name {
			t.Errorf("expected agent name %q, got %q", name, agent.Name())
		}
	}

	if _, err := NewAgent("shark", policy); err == nil {
		t.Error("expected error for unknown agent")
	}
	if _, err := NewAgent(AgentBlueprint, nil); err == nil {
		t.Error("expected error for blueprint agent without policy")
	}
}

func TestFixedAgents(t *testing.T) {
	root := kuhn.NewGameState()
	facingBet := root.NextState(kuhn.Bet)

	tests := []struct {
		agent Agent
		state kuhn.GameState
		want  kuhn.Action
	}{
		{passiveAgent{}, root, kuhn.Check},
		{passiveAgent{}, facingBet, kuhn.Call},
		{aggressiveAgent{}, root, kuhn.Bet},
		{aggressiveAgent{}, facingBet, kuhn.Call},
	}
	for _, tt := range tests {
		got, err := tt.agent.Act(nil, tt.state, kuhn.Jack)
		if err != nil {
			t.Fatalf("%s at %q: %v", tt.agent.Name(), tt.state.History, err)
		}
		if got != tt.want {
			t.Errorf("%s at %q: expected %s, got %s", tt.agent.Name(), tt.state.History, tt.want, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Hands: 0}).Validate(); err == nil {
		t.Error("expected error for zero hands")
	}
	if err := (Config{Hands: 10, Workers: -1}).Validate(); err == nil {
		t.Error("expected error for negative workers")
	}
	if err := (Config{Hands: 10}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSimulator_Run_BetVersusCall(t *testing.T) {
	sim := New(Config{Hands: 200, Seed: 12345, Workers: 3, Logger: quietLogger()},
		aggressiveAgent{}, passiveAgent{})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Hands != 200 {
		t.Fatalf("expected 200 hands, got %d", stats.Hands)
	}
	// Every hand is bet then called, so every result is a two chip showdown.
	if stats.NonShowdownWins != 0 || stats.NonShowdownNet != 0 {
		t.Errorf("expected no fold outcomes, got %d wins and %.1f net", stats.NonShowdownWins, stats.NonShowdownNet)
	}
	if stats.SumSq != 4*float64(stats.Hands) {
		t.Errorf("expected every result to be +/-2, sum of squares %.1f", stats.SumSq)
	}
	if stats.Seats[0].Hands != 100 || stats.Seats[1].Hands != 100 {
		t.Errorf("expected balanced seats, got %d/%d", stats.Seats[0].Hands, stats.Seats[1].Hands)
	}
}

func TestSimulator_Run_Mirror(t *testing.T) {
	sim := New(Config{Hands: 50, Seed: 7, Mirror: true, Logger: quietLogger()},
		aggressiveAgent{}, passiveAgent{})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Hands != 100 {
		t.Fatalf("expected mirrored run to play 100 hands, got %d", stats.Hands)
	}
	// Every hand is a two chip showdown, so each mirrored pair nets zero.
	if math.Abs(stats.Sum) > 1e-9 {
		t.Errorf("expected mirrored showdowns to net zero, got %.2f", stats.Sum)
	}
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	policy, err := runtime.New(solver.UniformBlueprint())
	if err != nil {
		t.Fatalf("runtime.New failed: %v", err)
	}
	run := func() float64 {
		sim := New(Config{Hands: 500, Seed: 99, Workers: 4, Logger: quietLogger()},
			mustAgent(t, AgentBlueprint, policy), mustAgent(t, AgentRandom, nil))
		stats, err := sim.Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return stats.Sum
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("expected identical results for identical seeds, got %.1f and %.1f", first, second)
	}
}

func TestSimulator_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(Config{Hands: 10, Logger: quietLogger()}, passiveAgent{}, passiveAgent{})
	_, err := sim.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	sim := New(Config{Hands: 20, Seed: 1}, aggressiveAgent{}, passiveAgent{})
	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var out strings.Builder
	PrintSummary(&out, stats, AgentBet, AgentCall)
	for _, want := range []string{"=== RESULTS: always-bet vs always-call ===", "Hands played: 20", "P1: 10 hands"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}
