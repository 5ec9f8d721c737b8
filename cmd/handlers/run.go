package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendbrief/internal/logger"
)

// NewRunCmd creates the end-to-end pipeline command.
func NewRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full weekly pipeline: ingest, context, report, render",
		Long: `Start a fresh run and execute every stage in order. Equivalent to
running ingest, context, report, and render against the same run ID. With
--upload the rendered document is also pushed to the configured Drive folder.`,
		Run: func(cmd *cobra.Command, args []string) {
			upload, _ := cmd.Flags().GetBool("upload")
			if err := runFull(upload); err != nil {
				logger.Error("Pipeline run failed", err)
				os.Exit(1)
			}
		},
	}

	runCmd.Flags().Bool("upload", false, "Upload the rendered document to Google Drive")
	return runCmd
}

func runFull(upload bool) error {
	if err := runIngest(""); err != nil {
		return fmt.Errorf("ingest stage: %w", err)
	}

	// The stages after ingest resolve the empty run ID to the newest run,
	// which is the one ingest just created.
	if err := runContext(""); err != nil {
		return fmt.Errorf("context stage: %w", err)
	}
	if err := runReport(""); err != nil {
		return fmt.Errorf("report stage: %w", err)
	}
	if err := runRender(""); err != nil {
		return fmt.Errorf("render stage: %w", err)
	}
	if upload {
		if err := runUpload(""); err != nil {
			return fmt.Errorf("upload stage: %w", err)
		}
	}

	fmt.Println("Pipeline complete.")
	return nil
}
