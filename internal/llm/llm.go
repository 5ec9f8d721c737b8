// Package llm wraps the Gemini API for brief generation.
package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"trendbrief/internal/config"
)

// Client represents a client for interacting with the LLM.
type Client struct {
	gClient *genai.Client
	cfg     config.GeminiConfig
}

// NewClient creates a new LLM client from the Gemini configuration. The API
// key comes from GEMINI_API_KEY (or alternatives) via the config layer.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required: set GEMINI_API_KEY or ai.gemini.api_key in config")
	}

	gClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{gClient: gClient, cfg: cfg}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.gClient.Close()
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.cfg.Model
}

// Generate produces text for the given system instruction and user prompt.
func (c *Client) Generate(ctx context.Context, systemText, userText string) (string, error) {
	model := c.gClient.GenerativeModel(c.cfg.Model)
	if c.cfg.Temperature > 0 {
		model.SetTemperature(c.cfg.Temperature)
	}
	if c.cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(c.cfg.MaxTokens)
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemText)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", c.cfg.Model)
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
