package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/tui"
)

// NewTUICmd creates the TUI command.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the Trendbrief terminal user interface",
		Long:  `Launch the Trendbrief TUI to browse runs and preview generated briefs.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Launching TUI...")
			tui.StartTUI(config.Get().App.DataDir)
		},
	}
}
