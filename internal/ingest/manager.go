package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/logger"
	"trendbrief/internal/runs"
)

// Adapter is one ingestion source: it produces raw rows for a run.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]core.RawRecord, error)
}

// Manager runs every configured adapter for one run, isolating failures per
// source, and writes the per-source and combined raw artifacts.
type Manager struct {
	adapters []Adapter
}

// NewManager wires the standard adapter set from configuration.
func NewManager(cfg *config.Config, cache TrendsCache) *Manager {
	timeout, err := time.ParseDuration(cfg.Apify.Timeout)
	if err != nil {
		timeout = 5 * time.Minute
	}
	apify := NewApifyClient(cfg.Apify.Token, timeout)

	return &Manager{
		adapters: []Adapter{
			NewInstagramAdapter(apify, cfg.Sources.Instagram),
			NewXAdapter(apify, cfg.Sources.X),
			NewRedditAdapter(cfg.Sources.Reddit),
			NewNewsAdapter(cfg.Sources.News),
			NewTrendsAdapter(apify, cfg.Sources.Trends, cache),
		},
	}
}

// NewManagerWithAdapters builds a manager over an explicit adapter set.
func NewManagerWithAdapters(adapters ...Adapter) *Manager {
	return &Manager{adapters: adapters}
}

// Run fetches all sources, writes raw/<source>_<date>.jsonl per source plus
// the combined all_<date>.json, and returns the combined rows. A failing
// source is logged and skipped; zero records from any one platform is valid.
func (m *Manager) Run(ctx context.Context, ws *runs.Workset) ([]core.RawRecord, error) {
	dateStamp := runs.DateStamp()
	var combined []core.RawRecord

	for _, adapter := range m.adapters {
		rows, err := adapter.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Source ingest failed", "source", adapter.Name(), "error", err.Error())
			continue
		}

		rawPath := filepath.Join(ws.RawDir, fmt.Sprintf("%s_%s.jsonl", adapter.Name(), dateStamp))
		if err := writeJSONL(rawPath, rows); err != nil {
			logger.Warn("Failed to write raw rows", "source", adapter.Name(), "error", err.Error())
		}

		logger.Info("Source ingested", "source", adapter.Name(), "rows", len(rows))
		combined = append(combined, rows...)
	}

	if err := WriteCombined(ws.CombinedPath(dateStamp), combined); err != nil {
		return nil, err
	}
	return combined, nil
}

// writeJSONL writes one JSON object per line.
func writeJSONL(path string, rows []core.RawRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
	}
	return nil
}

// WriteCombined writes the combined raw batch as indented JSON.
func WriteCombined(path string, rows []core.RawRecord) error {
	if rows == nil {
		rows = []core.RawRecord{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode combined batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write combined batch %s: %w", path, err)
	}
	return nil
}

// ReadCombined loads a combined raw batch from disk.
func ReadCombined(path string) ([]core.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combined batch %s: %w", path, err)
	}
	var rows []core.RawRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode combined batch %s: %w", path, err)
	}
	return rows, nil
}
