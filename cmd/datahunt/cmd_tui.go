package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"datahunt/cmd/datahunt/app"
	"datahunt/cmd/datahunt/ui"
	"datahunt/internal/logging"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive interface (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	m := app.New(app.Options{
		Backend:        client,
		ExportDir:      cfg.Export.OutputDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Styles:         ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
	})

	logging.UI("starting interactive session")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
