package tui

import (
	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/chat"
	tea "github.com/charmbracelet/bubbletea"
)

// Start launches the chat TUI against asker. backend is shown in the
// header.
func Start(asker chat.Asker, backend string) error {
	applog.Info("tui start backend=%s", backend)
	defer applog.Info("tui stop")

	app := NewApp(asker, backend)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
