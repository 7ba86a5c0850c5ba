package kuhn

// Card is one of the three ranks in the Kuhn deck. The underlying value is the
// rank and is only used for ordering at showdown.
type Card int

const (
	Jack  Card = 11
	Queen Card = 12
	King  Card = 13
)

// Cards lists the deck in ascending rank order.
var Cards = [...]Card{Jack, Queen, King}

func (c Card) String() string {
	switch c {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// Rank returns the ordering value of the card.
func (c Card) Rank() int {
	return int(c)
}

// Beats reports whether c wins a showdown against other.
func (c Card) Beats(other Card) bool {
	return c.Rank() > other.Rank()
}

// Deal is the chance outcome of a hand: Player1's card then Player2's card.
type Deal struct {
	P1 Card
	P2 Card
}

func (d Deal) String() string {
	return d.P1.String() + d.P2.String()
}

// Card returns the private card held by p.
func (d Deal) Card(p Player) Card {
	if p == Player1 {
		return d.P1
	}
	return d.P2
}

// Swap returns the deal with the seats exchanged.
func (d Deal) Swap() Deal {
	return Deal{P1: d.P2, P2: d.P1}
}

// Deals enumerates all six ordered pairs of distinct cards. The order is fixed
// (JQ, JK, QJ, QK, KJ, KQ) because regret trajectories depend on it.
func Deals() []Deal {
	deals := make([]Deal, 0, len(Cards)*(len(Cards)-1))
	for _, c1 := range Cards {
		for _, c2 := range Cards {
			if c1 == c2 {
				continue
			}
			deals = append(deals, Deal{P1: c1, P2: c2})
		}
	}
	return deals
}
