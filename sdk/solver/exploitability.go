package solver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/kuhnsolver/internal/kuhn"
)

// ExploitabilityReport summarises how far a blueprint is from equilibrium.
type ExploitabilityReport struct {
	// BestResponse holds, per seat, the value a best-responding player earns
	// against the blueprint playing the other seat.
	BestResponse [2]float64

	// Exploitability is the mean best-response gain; zero at equilibrium.
	Exploitability float64
}

// Exploitability computes both seats' best responses against bp in parallel.
// The blueprint is only read.
func Exploitability(ctx context.Context, bp *Blueprint) (ExploitabilityReport, error) {
	var report ExploitabilityReport
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range []kuhn.Player{kuhn.Player1, kuhn.Player2} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.BestResponse[p] = BestResponseValue(bp, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ExploitabilityReport{}, err
	}
	report.Exploitability = (report.BestResponse[0] + report.BestResponse[1]) / 2
	return report, nil
}

// BestResponseValue returns the expected payoff, from p's perspective, of the
// best pure strategy for p against bp in the other seat.
func BestResponseValue(bp *Blueprint, p kuhn.Player) float64 {
	total := 0.0
	chance := 1.0 / float64(len(kuhn.Deals()))
	for _, c := range kuhn.Cards {
		opp := make(map[kuhn.Card]float64, len(kuhn.Cards)-1)
		for _, oc := range kuhn.Cards {
			if oc != c {
				opp[oc] = chance
			}
		}
		total += bestResponse(bp, kuhn.NewGameState(), p, c, opp)
	}
	return total
}

// bestResponse sums over the opponent cards still possible, weighted by chance
// and the opponent's reach. At p's own nodes the card and history fix the
// information set, so maximising the summed value is the best response there.
func bestResponse(bp *Blueprint, state kuhn.GameState, p kuhn.Player, card kuhn.Card, opp map[kuhn.Card]float64) float64 {
	if state.Terminal {
		value := 0.0
		for oc, reach := range opp {
			deal := kuhn.Deal{P1: card, P2: oc}
			if p == kuhn.Player2 {
				deal = deal.Swap()
			}
			value += reach * p.Sign() * float64(kuhn.Payoff(deal.P1, deal.P2, state.History))
		}
		return value
	}

	actions := state.LegalActions()
	if state.CurrentPlayer == p {
		best := 0.0
		for i, a := range actions {
			v := bestResponse(bp, state.NextState(a), p, card, opp)
			if i == 0 || v > best {
				best = v
			}
		}
		return best
	}

	value := 0.0
	for i, a := range actions {
		next := make(map[kuhn.Card]float64, len(opp))
		for oc, reach := range opp {
			probs := bp.Probabilities(InfoSetKey{Card: oc, History: state.History}, actions)
			next[oc] = reach * probs[i]
		}
		value += bestResponse(bp, state.NextState(a), p, card, next)
	}
	return value
}
