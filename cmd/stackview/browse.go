package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stackview/internal/tui"
)

// browseCmd launches the terminal stack navigator.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <path>",
		Short: "Navigate a stack in the terminal",
		Long:  `Browse the stack at path with keyboard navigation and a coarse intensity preview, without opening a window.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			model, err := tui.New(cfg, args[0])
			if err != nil {
				fmt.Printf("Error opening %s: %v\n", args[0], err)
				os.Exit(1)
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				fmt.Printf("Error running navigator: %v\n", err)
				os.Exit(1)
			}
		},
	}
}
