package kuhn

import "testing"

func TestPayoffTable(t *testing.T) {
	tests := []struct {
		name    string
		c1, c2  Card
		history string
		want    int
	}{
		{"check-check high wins", King, Queen, "Check-Check", 1},
		{"check-check low loses", Jack, Queen, "Check-Check", -1},
		{"bet-fold", Jack, King, "Bet-Fold", 1},
		{"bet-fold low card", Jack, King, "Bet-Fold", 1},
		{"check-bet-fold", Queen, King, "Check-Bet-Fold", -1},
		{"check-bet-fold mid vs high", Queen, King, "Check-Bet-Fold", -1},
		{"bet-call high", King, Jack, "Bet-Call", 2},
		{"bet-call mid over low", Queen, Jack, "Bet-Call", 2},
		{"bet-call low", Jack, King, "Bet-Call", -2},
		{"check-bet-call high", King, Queen, "Check-Bet-Call", 2},
		{"check-bet-call low", Jack, Queen, "Check-Bet-Call", -2},
		{"non terminal", King, Jack, "Check", 0},
		{"empty", King, Jack, "", 0},
		{"garbage", King, Jack, "Raise-Raise", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayoffText(tt.c1, tt.c2, tt.history); got != tt.want {
				t.Fatalf("PayoffText(%v, %v, %q) = %d, want %d", tt.c1, tt.c2, tt.history, got, tt.want)
			}
		})
	}
}

func TestPayoffAntisymmetricAtShowdown(t *testing.T) {
	for _, d := range Deals() {
		for _, text := range []string{"Check-Check", "Bet-Call", "Check-Bet-Call"} {
			a := PayoffText(d.P1, d.P2, text)
			b := PayoffText(d.P2, d.P1, text)
			if a != -b {
				t.Fatalf("%s with %v: %d vs swapped %d", text, d, a, b)
			}
		}
	}
}

func TestPayoffMatchesTerminalStates(t *testing.T) {
	// Every terminal state reached through NextState must have a non-zero payoff.
	var walk func(GameState)
	walk = func(s GameState) {
		if s.Terminal {
			for _, d := range Deals() {
				if Payoff(d.P1, d.P2, s.History) == 0 {
					t.Fatalf("terminal %q pays 0 for %v", s.History, d)
				}
			}
			return
		}
		if Payoff(King, Jack, s.History) != 0 {
			t.Fatalf("non-terminal %q pays non-zero", s.History)
		}
		for _, a := range s.LegalActions() {
			walk(s.NextState(a))
		}
	}
	walk(NewGameState())
}
