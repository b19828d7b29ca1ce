package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run - starts the terminal UI and blocks until the player quits or the context is cancelled.
func Run(ctx context.Context, logger *slog.Logger) error {
	program := tea.NewProgram(NewModel(logger), tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}
