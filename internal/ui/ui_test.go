package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mediagrab/internal/media"
)

func TestResult(t *testing.T) {
	done := spinnerModel{outcome: media.Succeed("tester", media.File{Filename: "a.zip"})}

	tests := []struct {
		name    string
		final   tea.Model
		err     error
		wantErr error
		wantOK  bool
	}{
		{"finished", done, nil, nil, true},
		{"killed by context", nil, fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled), ErrInterrupted, false},
		{"killed with final model", done, tea.ErrProgramKilled, ErrInterrupted, false},
		{"key interrupt", spinnerModel{interrupted: true}, nil, ErrInterrupted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := result(tt.final, tt.err)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("result() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantOK && (outcome == nil || !outcome.OK()) {
				t.Errorf("result() outcome = %v, want success", outcome)
			}
		})
	}
}

func TestResultOtherError(t *testing.T) {
	_, err := result(nil, errors.New("tty gone"))
	if err == nil || errors.Is(err, ErrInterrupted) {
		t.Errorf("result() error = %v, want a wrapped program error", err)
	}
}

func TestSpinnerQuitKey(t *testing.T) {
	cancelled := false
	m := spinnerModel{cancel: func() { cancelled = true }}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(spinnerModel).interrupted {
		t.Error("ctrl+c did not mark the model interrupted")
	}
	if !cancelled {
		t.Error("ctrl+c did not cancel the extraction")
	}
	if cmd == nil {
		t.Error("ctrl+c did not quit")
	}
}

func TestSpinnerDone(t *testing.T) {
	outcome := media.Succeed("tester", media.File{})
	next, cmd := spinnerModel{}.Update(doneMsg{outcome: outcome})
	if next.(spinnerModel).outcome == nil || cmd == nil {
		t.Error("done message did not store the outcome and quit")
	}
	if next.View() != "" {
		t.Errorf("View() after done = %q, want empty", next.View())
	}
}
