package report

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/sdk/solver"
)

func testBlueprint() *solver.Blueprint {
	return &solver.Blueprint{
		Iterations: 10,
		Strategies: map[string]solver.Distribution{
			"Q-Bet": {
				Actions:       []kuhn.Action{kuhn.Call, kuhn.Fold},
				Probabilities: []float64{0.3371, 0.6629},
			},
			"J": {
				Actions:       []kuhn.Action{kuhn.Check, kuhn.Bet},
				Probabilities: []float64{0.7892, 0.2108},
			},
		},
	}
}

func TestRender(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Render(&out, testBlueprint()))

	want := `
=== Kuhn Poker GTO Strategy ===

Information Set: J
  Bet: 21.08%
  Check: 78.92%

Information Set: Q-Bet
  Call: 33.71%
  Fold: 66.29%

`
	assert.Equal(t, want, out.String())
}

func TestRenderTrainedStoreHasEveryInfoSet(t *testing.T) {
	var out strings.Builder
	require.NoError(t, Render(&out, solver.NewBlueprint(solver.Train(10))))

	assert.Equal(t, 12, strings.Count(out.String(), "Information Set: "))
	assert.Contains(t, out.String(), "Information Set: K-Check-Bet\n  Call: ")
}

func TestRenderSummary(t *testing.T) {
	var out strings.Builder
	require.NoError(t, RenderSummary(&out, 12))
	assert.Equal(t, "\nTraining complete!\nTotal information sets: 12\n", out.String())
}

func TestRenderStyled(t *testing.T) {
	var out strings.Builder
	require.NoError(t, RenderStyled(&out, testBlueprint(), termenv.Ascii))

	text := out.String()
	assert.NotContains(t, text, "\x1b[", "ascii profile should not emit escape codes")
	assert.Contains(t, text, "Kuhn Poker GTO Strategy")
	assert.Contains(t, text, "10 iterations")
	assert.Contains(t, text, "21.08%")
	assert.Contains(t, text, "66.29%")
	assert.Less(t, strings.Index(text, "J"), strings.Index(text, "Q-Bet"))
	assert.Less(t, strings.Index(text, "Bet "), strings.Index(text, "Check"))
}

func TestFilled(t *testing.T) {
	assert.Equal(t, 0, filled(0))
	assert.Equal(t, barWidth, filled(1))
	assert.Equal(t, barWidth/2, filled(0.5))
}
