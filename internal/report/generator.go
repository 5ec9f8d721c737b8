// Package report turns a prepared context payload into the weekly brief
// markdown via the configured text generator.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trendbrief/internal/core"
	"trendbrief/internal/logger"
)

// TextGenerator is the minimal LLM surface the generator needs.
type TextGenerator interface {
	Generate(ctx context.Context, systemText, userText string) (string, error)
	ModelName() string
}

// Generator produces briefs from context payloads.
type Generator struct {
	llm TextGenerator
}

// NewGenerator creates a brief generator over the given text backend.
func NewGenerator(llm TextGenerator) *Generator {
	return &Generator{llm: llm}
}

// Generate renders the payload as a fenced JSON block, appends it to the
// structure prompt, and asks the model for the brief markdown.
func (g *Generator) Generate(ctx context.Context, runID string, payload *core.ContextPayload) (*core.Brief, error) {
	ctxJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode context payload: %w", err)
	}

	userText := UserPrompt + "\n\nContext JSON:\n```json\n" + string(ctxJSON) + "\n```"

	logger.Info("Generating weekly brief",
		"model", g.llm.ModelName(),
		"total_items", payload.Summary.TotalItems,
		"top_posts", len(payload.TopPosts))

	markdown, err := g.llm.Generate(ctx, SystemPrompt, userText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate brief: %w", err)
	}

	return &core.Brief{
		ID:            uuid.NewString(),
		RunID:         runID,
		Markdown:      markdown,
		ModelUsed:     g.llm.ModelName(),
		DateGenerated: time.Now().UTC(),
	}, nil
}
