package kuhn

// Payoff returns the chips won by Player1 at the end of a hand. Player2's
// payoff is the negation. Sequences that do not end a hand pay 0 so the
// function stays total.
func Payoff(c1, c2 Card, h History) int {
	switch {
	case h.is(Check, Check):
		return showdown(c1, c2, 1)
	case h.is(Bet, Fold):
		return 1
	case h.is(Check, Bet, Fold):
		return -1
	case h.is(Bet, Call), h.is(Check, Bet, Call):
		return showdown(c1, c2, 2)
	default:
		return 0
	}
}

// PayoffText is Payoff over the textual history form, e.g. "Check-Bet-Call".
// Text that does not parse pays 0.
func PayoffText(c1, c2 Card, history string) int {
	h, err := ParseHistory(history)
	if err != nil {
		return 0
	}
	return Payoff(c1, c2, h)
}

func showdown(c1, c2 Card, stake int) int {
	if c1.Beats(c2) {
		return stake
	}
	return -stake
}
