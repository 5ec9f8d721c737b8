package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/logger"
	"trendbrief/internal/store"
)

// NewRunsCmd creates the run listing command.
func NewRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs and their pipeline status",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			if err := runRunsList(limit); err != nil {
				logger.Error("Failed to list runs", err)
				os.Exit(1)
			}
		},
	}

	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	return runsCmd
}

func runRunsList(limit int) error {
	cfg := config.Get()

	st, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() { _ = st.Close() }()

	recorded, err := st.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range recorded {
		fmt.Printf("%s  %s  %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Status)
	}
	return nil
}
