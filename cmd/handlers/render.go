package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/docx"
	"trendbrief/internal/logger"
)

// NewRenderCmd creates the document rendering command.
func NewRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the run's brief markdown as a Word document",
		Long: `Convert the generated brief markdown into a styled .docx with working
hyperlinks, and promote both artifacts into the shared latest directory.`,
		Run: func(cmd *cobra.Command, args []string) {
			runID, _ := cmd.Flags().GetString("run-id")
			if err := runRender(runID); err != nil {
				logger.Error("Render failed", err)
				os.Exit(1)
			}
		},
	}

	renderCmd.Flags().String("run-id", "", "Run to render (default: the newest run)")
	return renderCmd
}

func runRender(runID string) error {
	cfg := config.Get()

	ws, err := openWorkset(cfg.App.DataDir, runID, true)
	if err != nil {
		return err
	}

	md, err := os.ReadFile(ws.BriefMarkdownPath())
	if os.IsNotExist(err) {
		return fmt.Errorf("no brief markdown in %s: run report first", ws.Root)
	}
	if err != nil {
		return fmt.Errorf("failed to read brief markdown: %w", err)
	}

	if err := docx.RenderFile(string(md), ws.BriefDocumentPath()); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	for _, artifact := range []string{ws.BriefMarkdownPath(), ws.BriefDocumentPath()} {
		if err := ws.PromoteLatest(artifact); err != nil {
			logger.Warn("Failed to promote artifact", "path", artifact, "error", err.Error())
		}
	}

	saveRunStatus(ws.ID, "rendered")

	fmt.Printf("Rendered %s\n", ws.BriefDocumentPath())
	return nil
}
