// ABOUTME: TUI subcommand
// ABOUTME: Loads a dataset snapshot and runs the interactive browser
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/pulse/tui"
)

// TUICommand launches the full-screen interface.
func TUICommand(env *Env) error {
	c, err := env.classifier()
	if err != nil {
		return err
	}
	data, err := env.dataset()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(data, c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
