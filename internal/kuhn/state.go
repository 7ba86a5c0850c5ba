package kuhn

// MaxDepth is the longest action sequence a hand can reach.
const MaxDepth = 3

// Player identifies a seat. Player1 acts first.
type Player int

const (
	Player1 Player = iota
	Player2
)

func (p Player) String() string {
	if p == Player1 {
		return "P1"
	}
	return "P2"
}

// Other returns the opposing seat.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Sign converts a Player1-perspective value into p's perspective.
func (p Player) Sign() float64 {
	if p == Player1 {
		return 1
	}
	return -1
}

// GameState is a node of the betting tree. It is a value type: transitions
// produce new states.
type GameState struct {
	History       History
	CurrentPlayer Player
	Terminal      bool
}

// NewGameState returns the root of the betting tree.
func NewGameState() GameState {
	return GameState{CurrentPlayer: Player1}
}

// LegalActions returns the actions available at s, in a fixed order. Terminal
// states have none.
func (s GameState) LegalActions() []Action {
	if s.Terminal {
		return nil
	}
	h := s.History
	switch {
	case h.is(), h.is(Check):
		return []Action{Check, Bet}
	case h.is(Check, Bet), h.is(Bet):
		return []Action{Call, Fold}
	default:
		return nil
	}
}

// NextState applies a and hands the turn to the other player.
func (s GameState) NextState(a Action) GameState {
	h := s.History.Append(a)
	return GameState{
		History:       h,
		CurrentPlayer: s.CurrentPlayer.Other(),
		Terminal:      isTerminal(h),
	}
}

// IsLegal reports whether a may be played at s.
func (s GameState) IsLegal(a Action) bool {
	for _, legal := range s.LegalActions() {
		if legal == a {
			return true
		}
	}
	return false
}

func isTerminal(h History) bool {
	return h.is(Check, Check) ||
		h.is(Bet, Fold) ||
		h.is(Check, Bet, Fold) ||
		h.is(Bet, Call) ||
		h.is(Check, Bet, Call)
}

// Walk visits every state of the betting tree depth first, root included.
func Walk(visit func(GameState)) {
	var walk func(GameState)
	walk = func(s GameState) {
		visit(s)
		for _, a := range s.LegalActions() {
			walk(s.NextState(a))
		}
	}
	walk(NewGameState())
}
