// Package ui renders extraction progress and results for a terminal.
// Callers fall back to raw JSON when stdout is not a TTY.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"mediagrab/internal/media"
)

// ErrInterrupted is returned by Run when the user cancels the spinner.
var ErrInterrupted = errors.New("interrupted")

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type doneMsg struct {
	outcome media.Outcome
}

type spinnerModel struct {
	spinner     spinner.Model
	label       string
	run         func() media.Outcome
	cancel      context.CancelFunc
	outcome     media.Outcome
	interrupted bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{outcome: m.run()}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.outcome = msg.outcome
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.interrupted = true
			m.cancel()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.outcome != nil || m.interrupted {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.label)
}

// Run shows a spinner on stderr while fn runs. fn receives a context that
// is cancelled if the user quits early.
func Run(ctx context.Context, label string, fn func(context.Context) media.Outcome) (media.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
		label:  label,
		run:    func() media.Outcome { return fn(ctx) },
		cancel: cancel,
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	return result(final, err)
}

// result maps the program's exit to an outcome. A cancelled context kills
// the program; that is reported like a key press interrupt.
func result(final tea.Model, err error) (media.Outcome, error) {
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil, ErrInterrupted
	}
	if err != nil {
		return nil, fmt.Errorf("running spinner: %w", err)
	}
	fm, ok := final.(spinnerModel)
	if !ok || fm.interrupted || fm.outcome == nil {
		return nil, ErrInterrupted
	}
	return fm.outcome, nil
}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)
