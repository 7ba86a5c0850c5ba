// Package report prints a solved strategy in plain text or as a styled
// terminal table.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/kuhnsolver/internal/kuhn"
	"github.com/lox/kuhnsolver/sdk/solver"
)

const barWidth = 24

// Render writes the average strategy of every information set in key order,
// with actions sorted by name.
func Render(w io.Writer, bp *solver.Blueprint) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "\n=== Kuhn Poker GTO Strategy ===\n\n")
	for _, key := range bp.Keys() {
		fmt.Fprintf(bw, "Information Set: %s\n", key)
		for _, row := range rows(bp.Strategies[key]) {
			fmt.Fprintf(bw, "  %s: %.2f%%\n", row.action, row.prob*100)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// RenderSummary writes the closing lines of a training run.
func RenderSummary(w io.Writer, infoSets int) error {
	_, err := fmt.Fprintf(w, "\nTraining complete!\nTotal information sets: %d\n", infoSets)
	return err
}

type row struct {
	action kuhn.Action
	prob   float64
}

func rows(d solver.Distribution) []row {
	out := make([]row, len(d.Actions))
	for i, a := range d.Actions {
		out[i] = row{action: a, prob: d.Probabilities[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].action.String() < out[j].action.String()
	})
	return out
}

type styles struct {
	title  lipgloss.Style
	meta   lipgloss.Style
	key    lipgloss.Style
	action lipgloss.Style
	bar    lipgloss.Style
	empty  lipgloss.Style
	pct    lipgloss.Style
	block  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		meta: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		key: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		action: r.NewStyle().
			Width(6),
		bar: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		empty: r.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C")),
		pct: r.NewStyle().
			Width(8).
			Align(lipgloss.Right),
		block: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}

// RenderStyled writes the same content as Render using lipgloss, laid out as
// one bordered block per information set with a bar per action. profile fixes
// the colour depth so output is stable when w is not a terminal.
func RenderStyled(w io.Writer, bp *solver.Blueprint, profile termenv.Profile) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	st := newStyles(r)

	var sb strings.Builder
	sb.WriteString(st.title.Render("Kuhn Poker GTO Strategy"))
	sb.WriteString("\n")
	if bp.Iterations > 0 {
		sb.WriteString(st.meta.Render(fmt.Sprintf("%d iterations, game value %+.4f", bp.Iterations, bp.GameValue())))
		sb.WriteString("\n")
	}

	for _, key := range bp.Keys() {
		lines := []string{st.key.Render(key)}
		for _, row := range rows(bp.Strategies[key]) {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
				st.action.Render(row.action.String()),
				st.bar.Render(strings.Repeat("█", filled(row.prob))),
				st.empty.Render(strings.Repeat("░", barWidth-filled(row.prob))),
				st.pct.Render(fmt.Sprintf("%.2f%%", row.prob*100)),
			))
		}
		sb.WriteString(st.block.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func filled(p float64) int {
	n := int(p*barWidth + 0.5)
	return max(0, min(barWidth, n))
}
