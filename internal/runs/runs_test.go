package runs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID()
	if !strings.HasPrefix(id, DateStamp()+"-") {
		t.Errorf("Expected ID to start with the date stamp, got %s", id)
	}
	if len(id) != len(DateStamp())+1+8 {
		t.Errorf("Expected 8-char suffix, got %s", id)
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("Expected distinct IDs")
	}
}

func TestOpenCreatesDirectories(t *testing.T) {
	dataDir := t.TempDir()

	ws, err := Open(dataDir, "run-1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, dir := range []string{ws.RawDir, ws.ContextDir, ws.OutputDir, ws.LatestDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s", dir)
		}
	}
	if ws.ID != "run-1" {
		t.Errorf("Expected explicit run ID kept, got %s", ws.ID)
	}
}

func TestOpenGeneratesID(t *testing.T) {
	ws, err := Open(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if ws.ID == "" {
		t.Error("Expected a generated run ID")
	}
}

func TestOpenIsolatesRuns(t *testing.T) {
	dataDir := t.TempDir()

	a, err := Open(dataDir, "run-a")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	b, err := Open(dataDir, "run-b")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if a.Root == b.Root || a.RawDir == b.RawDir {
		t.Error("Expected distinct directory trees per run")
	}
	if a.LatestDir != b.LatestDir {
		t.Error("Expected the latest directory to be shared")
	}
}

func TestListNewestFirst(t *testing.T) {
	dataDir := t.TempDir()

	for _, id := range []string{"old-run", "new-run"} {
		if _, err := Open(dataDir, id); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		// Directory mtimes need to differ for the ordering to be observable.
		time.Sleep(10 * time.Millisecond)
	}

	ids, err := List(dataDir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(ids))
	}
	if ids[0] != "new-run" {
		t.Errorf("Expected newest run first, got %v", ids)
	}
}

func TestListEmpty(t *testing.T) {
	ids, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no runs, got %v", ids)
	}
}

func TestLatestCombined(t *testing.T) {
	ws, err := Open(t.TempDir(), "run-1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := ws.LatestCombined(); err == nil {
		t.Error("Expected error when no combined batch exists")
	}

	for _, stamp := range []string{"2026-08-20", "2026-08-27"} {
		if err := os.WriteFile(ws.CombinedPath(stamp), []byte("[]"), 0644); err != nil {
			t.Fatalf("Failed to write batch: %v", err)
		}
	}

	latest, err := ws.LatestCombined()
	if err != nil {
		t.Fatalf("LatestCombined failed: %v", err)
	}
	if filepath.Base(latest) != "all_2026-08-27.json" {
		t.Errorf("Expected newest batch, got %s", latest)
	}
}

func TestPromoteLatest(t *testing.T) {
	ws, err := Open(t.TempDir(), "run-1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	src := ws.BriefMarkdownPath()
	if err := os.WriteFile(src, []byte("# Brief"), 0644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	if err := ws.PromoteLatest(src); err != nil {
		t.Fatalf("PromoteLatest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(ws.LatestDir, "weekly_brief.md"))
	if err != nil {
		t.Fatalf("Expected promoted copy: %v", err)
	}
	if string(data) != "# Brief" {
		t.Errorf("Unexpected promoted content: %s", data)
	}
}
