package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/logger"
	"trendbrief/internal/upload"
)

// NewUploadCmd creates the Drive upload command.
func NewUploadCmd() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the run's rendered document to Google Drive",
		Long: `Upload the rendered weekly brief into the configured Drive folder,
converting it to a native Google Doc so the team can open it directly.`,
		Run: func(cmd *cobra.Command, args []string) {
			runID, _ := cmd.Flags().GetString("run-id")
			if err := runUpload(runID); err != nil {
				logger.Error("Upload failed", err)
				os.Exit(1)
			}
		},
	}

	uploadCmd.Flags().String("run-id", "", "Run to upload (default: the newest run)")
	return uploadCmd
}

func runUpload(runID string) error {
	cfg := config.Get()

	ws, err := openWorkset(cfg.App.DataDir, runID, true)
	if err != nil {
		return err
	}

	docPath := ws.BriefDocumentPath()
	if _, err := os.Stat(docPath); os.IsNotExist(err) {
		return fmt.Errorf("no rendered document in %s: run render first", ws.Root)
	}

	ctx := context.Background()
	uploader, err := upload.NewDriveUploader(ctx, cfg.Drive)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("Weekly Brief %s", ws.ID)
	link, err := uploader.UploadBrief(ctx, docPath, name)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded: %s\n", link)
	return nil
}
