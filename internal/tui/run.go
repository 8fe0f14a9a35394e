package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser on the alternate screen and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, catalog Catalog) error {
	p := tea.NewProgram(New(ctx, catalog), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run catalog browser: %w", err)
	}
	return nil
}
