package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fileren/internal/config"
	"fileren/internal/tui"
)

func main() {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		settings = config.DefaultSettings()
	}

	p := tea.NewProgram(tui.NewModel(settings), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
