package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trendbrief/internal/core"
	"trendbrief/internal/runs"
)

type fakeAdapter struct {
	name string
	rows []core.RawRecord
	err  error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	return f.rows, f.err
}

func TestManagerRunWritesArtifacts(t *testing.T) {
	ws, err := runs.Open(t.TempDir(), "test-run")
	if err != nil {
		t.Fatalf("Failed to open workset: %v", err)
	}

	manager := NewManagerWithAdapters(
		&fakeAdapter{name: "x", rows: []core.RawRecord{{"url": "https://x.com/1"}}},
		&fakeAdapter{name: "reddit", rows: []core.RawRecord{{"url": "https://reddit.com/1"}, {"url": "https://reddit.com/2"}}},
	)

	combined, err := manager.Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(combined) != 3 {
		t.Errorf("Expected 3 combined rows, got %d", len(combined))
	}

	dateStamp := runs.DateStamp()
	for _, name := range []string{"x", "reddit"} {
		raw := filepath.Join(ws.RawDir, name+"_"+dateStamp+".jsonl")
		if _, err := os.Stat(raw); err != nil {
			t.Errorf("Expected raw artifact %s: %v", raw, err)
		}
	}

	rows, err := ReadCombined(ws.CombinedPath(dateStamp))
	if err != nil {
		t.Fatalf("Failed to read combined batch: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows in combined batch, got %d", len(rows))
	}
}

func TestManagerRunIsolatesSourceFailure(t *testing.T) {
	ws, err := runs.Open(t.TempDir(), "test-run")
	if err != nil {
		t.Fatalf("Failed to open workset: %v", err)
	}

	manager := NewManagerWithAdapters(
		&fakeAdapter{name: "instagram", err: errors.New("actor quota exceeded")},
		&fakeAdapter{name: "news", rows: []core.RawRecord{{"url": "https://news.example.com/a"}}},
	)

	combined, err := manager.Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("Expected run to survive a failing source: %v", err)
	}
	if len(combined) != 1 {
		t.Errorf("Expected 1 row from the surviving source, got %d", len(combined))
	}
}

func TestManagerRunEmptySourcesStillWritesCombined(t *testing.T) {
	ws, err := runs.Open(t.TempDir(), "test-run")
	if err != nil {
		t.Fatalf("Failed to open workset: %v", err)
	}

	manager := NewManagerWithAdapters(&fakeAdapter{name: "x"})
	combined, err := manager.Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(combined) != 0 {
		t.Errorf("Expected no rows, got %d", len(combined))
	}

	rows, err := ReadCombined(ws.CombinedPath(runs.DateStamp()))
	if err != nil {
		t.Fatalf("Expected combined batch on disk even when empty: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected empty combined batch, got %d rows", len(rows))
	}
}
