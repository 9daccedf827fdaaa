package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/lifeledger/internal/service"
)

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, svc service.Ledger, opts ...Option) error {
	// Best-effort terminal restore in case the program exits abnormally.
	defer func() {
		_, _ = os.Stdout.Write([]byte("\033[?25h")) // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))    // Reset colors
	}()

	p := tea.NewProgram(New(ctx, svc, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
