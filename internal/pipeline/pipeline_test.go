package pipeline

import (
	"testing"

	"trendbrief/internal/core"
)

func TestPrepareEndToEnd(t *testing.T) {
	rows := []core.RawRecord{
		{"platform": "reddit", "url": "https://reddit.com/r/x/1", "text": "hop water is everywhere", "likes": float64(40), "comments": float64(5)},
		{"platform": "reddit", "url": "https://reddit.com/r/x/1", "text": "duplicate row"},
		{"platform": "x", "url": "https://x.com/1", "text": "hop water again", "likes": float64(3)},
		{"platform": "news", "url": "https://news.example.com/a", "title": "NA beer sales rise", "text": "sales rose again"},
		{"platform": "instagram", "url": "https://instagram.com/p/1", "caption": "hop water taste test", "likes": float64(900), "comments": float64(60)},
	}

	payload := Prepare(rows, Options{PerPlatform: 10})

	if payload.Summary.TotalItems != 4 {
		t.Errorf("Expected 4 items after dedup, got %d", payload.Summary.TotalItems)
	}
	if payload.Summary.ByPlatform["reddit"] != 1 {
		t.Errorf("Expected 1 reddit record, got %d", payload.Summary.ByPlatform["reddit"])
	}
	if len(payload.TopPosts) != 4 {
		t.Errorf("Expected all 4 records sampled, got %d", len(payload.TopPosts))
	}
	for i, p := range payload.TopPosts {
		if p.Score == nil {
			t.Errorf("Top post %d has no score", i)
		}
	}

	found := false
	for _, c := range payload.SlangCandidates {
		if c.Term == "hop water" && c.Count == 3 {
			found = true
		}
	}
	if !found {
		t.Error("Expected 'hop water' slang candidate with count 3")
	}

	if len(payload.RedditPosts) != 1 {
		t.Errorf("Expected 1 reddit post in grounding subset, got %d", len(payload.RedditPosts))
	}
	if len(payload.NewsArticles) != 1 {
		t.Errorf("Expected 1 news article in grounding subset, got %d", len(payload.NewsArticles))
	}
}

func TestPrepareEmptyBatch(t *testing.T) {
	payload := Prepare(nil, Options{})

	if payload.Summary.TotalItems != 0 {
		t.Errorf("Expected 0 items, got %d", payload.Summary.TotalItems)
	}
	if payload.TopPosts == nil || payload.SlangCandidates == nil ||
		payload.RedditPosts == nil || payload.NewsArticles == nil {
		t.Error("Expected non-nil empty slices so the payload encodes as [] not null")
	}
}

func TestAssembleCountsByPlatform(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x"},
		{Platform: "x"},
		{Platform: "reddit"},
	}

	payload := Assemble(records, nil, nil)
	if payload.Summary.ByPlatform["x"] != 2 || payload.Summary.ByPlatform["reddit"] != 1 {
		t.Errorf("Unexpected platform counts: %v", payload.Summary.ByPlatform)
	}
}
