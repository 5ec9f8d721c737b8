// Package runs manages per-run working sets. Every pipeline invocation gets
// an isolated directory tree for its raw, context, and output artifacts, so
// concurrent or repeated runs never share mutable state. Scores and dedup
// keys are batch-relative only.
package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Workset is the directory namespace for one run.
type Workset struct {
	ID         string // Run identifier
	Root       string // data/runs/<id>
	RawDir     string // Per-source raw jsonl files
	ContextDir string // Prepared context payload
	OutputDir  string // Brief markdown and rendered document
	LatestDir  string // data/latest, shared mirror of the newest artifacts
}

// DateStamp returns the UTC date stamp used in artifact filenames.
func DateStamp() string {
	return time.Now().UTC().Format("2006-01-02")
}

// NewID generates a fresh run identifier: the date stamp plus a short unique
// suffix, readable in directory listings.
func NewID() string {
	return fmt.Sprintf("%s-%s", DateStamp(), uuid.NewString()[:8])
}

// Open returns the working set for runID under dataDir, creating its
// directories. An empty runID gets a fresh identifier.
func Open(dataDir, runID string) (*Workset, error) {
	if runID == "" {
		runID = NewID()
	}

	root := filepath.Join(dataDir, "runs", runID)
	ws := &Workset{
		ID:         runID,
		Root:       root,
		RawDir:     filepath.Join(root, "raw"),
		ContextDir: filepath.Join(root, "context"),
		OutputDir:  filepath.Join(root, "outputs"),
		LatestDir:  filepath.Join(dataDir, "latest"),
	}

	for _, dir := range []string{ws.RawDir, ws.ContextDir, ws.OutputDir, ws.LatestDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create run directory %s: %w", dir, err)
		}
	}
	return ws, nil
}

// List returns the run IDs present under dataDir, newest first by directory
// modification time.
func List(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dataDir, "runs"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	type runEntry struct {
		id  string
		mod time.Time
	}
	var found []runEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, runEntry{id: e.Name(), mod: info.ModTime()})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod.After(found[j].mod) })

	ids := make([]string, len(found))
	for i, e := range found {
		ids[i] = e.id
	}
	return ids, nil
}

// CombinedPath is the combined raw batch for the given date stamp.
func (w *Workset) CombinedPath(dateStamp string) string {
	return filepath.Join(w.Root, fmt.Sprintf("all_%s.json", dateStamp))
}

// LatestCombined finds the newest combined batch in this run. A missing
// batch is a sequencing error: ingest has to run first.
func (w *Workset) LatestCombined() (string, error) {
	matches, err := filepath.Glob(filepath.Join(w.Root, "all_*.json"))
	if err != nil {
		return "", fmt.Errorf("failed to scan for combined batches: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no combined batch found in %s: run ingest first", w.Root)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// ContextPath is the prepared context payload for this run.
func (w *Workset) ContextPath() string {
	return filepath.Join(w.ContextDir, "context.json")
}

// BriefMarkdownPath is the generated brief markdown for this run.
func (w *Workset) BriefMarkdownPath() string {
	return filepath.Join(w.OutputDir, "weekly_brief.md")
}

// BriefDocumentPath is the rendered DOCX for this run.
func (w *Workset) BriefDocumentPath() string {
	return filepath.Join(w.OutputDir, "weekly_brief.docx")
}

// PromoteLatest copies an artifact into the shared latest directory so the
// newest brief is always at a stable path.
func (w *Workset) PromoteLatest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	dest := filepath.Join(w.LatestDir, filepath.Base(path))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write latest artifact %s: %w", dest, err)
	}
	return nil
}
