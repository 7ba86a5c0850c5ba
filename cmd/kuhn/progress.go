package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/kuhnsolver/sdk/solver"
)

const (
	maxBarWidth = 60

	// progressSteps is how many updates the bar receives over a run.
	progressSteps = 100
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type progressMsg solver.Progress

type trainingDoneMsg struct{ err error }

type progressModel struct {
	bar    progress.Model
	latest solver.Progress
	done   bool
	err    error
}

func newProgressModel() progressModel {
	return progressModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
	case progressMsg:
		m.latest = solver.Progress(msg)
	case trainingDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Training Kuhn Poker GTO strategy"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.latest.Fraction()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("iteration %d/%d  info sets %d  nodes/iter %d  elapsed %s",
		m.latest.Iteration, m.latest.Iterations, m.latest.InfoSets, m.latest.Stats.NodesVisited,
		m.latest.Elapsed.Round(time.Millisecond))))
	b.WriteString("\n")
	if !m.done {
		b.WriteString(statusStyle.Render("press q to stop"))
		b.WriteString("\n")
	}
	return b.String()
}

// progressInterval spreads progressSteps updates over a run of iterations.
func progressInterval(iterations int) int {
	return max(1, iterations/progressSteps)
}

// trainWithProgressBar runs the trainer while a bubbletea program draws its
// progress on stderr. Quitting the program cancels training.
func trainWithProgressBar(ctx context.Context, trainer *solver.Trainer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg := trainer.TrainingConfig(); cfg.ProgressEvery == 0 {
		trainer.SetProgressEvery(progressInterval(cfg.Iterations))
	}

	program := tea.NewProgram(newProgressModel(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	errCh := make(chan error, 1)
	go func() {
		err := trainer.Run(ctx, func(p solver.Progress) {
			program.Send(progressMsg(p))
		})
		program.Send(trainingDoneMsg{err: err})
		errCh <- err
	}()

	_, runErr := program.Run()
	cancel()
	trainErr := <-errCh

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("progress display: %w", runErr)
	}
	return trainErr
}
