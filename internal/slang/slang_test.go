package slang

import (
	"testing"

	"trendbrief/internal/core"
)

func social(text string) core.SourceRecord {
	return core.SourceRecord{Platform: core.PlatformX, Text: text}
}

func findTerm(candidates []core.SlangCandidate, term string) (core.SlangCandidate, bool) {
	for _, c := range candidates {
		if c.Term == term {
			return c, true
		}
	}
	return core.SlangCandidate{}, false
}

func TestExtractCountsRepeatedPhrases(t *testing.T) {
	records := []core.SourceRecord{
		social("hop water is everywhere"),
		social("trying hop water again"),
		social("hop water review soon"),
	}

	candidates := NewExtractor().Extract(records)

	c, ok := findTerm(candidates, "hop water")
	if !ok {
		t.Fatal("Expected bigram 'hop water' among candidates")
	}
	if c.Count != 3 {
		t.Errorf("Expected 'hop water' count 3, got %d", c.Count)
	}
}

func TestExtractOrdersByCountThenFirstOccurrence(t *testing.T) {
	records := []core.SourceRecord{
		social("zebra zebra zebra apple apple banana"),
	}

	candidates := NewExtractor().Extract(records)
	if len(candidates) < 3 {
		t.Fatalf("Expected at least 3 candidates, got %d", len(candidates))
	}

	if candidates[0].Term != "zebra" || candidates[0].Count != 3 {
		t.Errorf("Expected 'zebra' (3) first, got %q (%d)", candidates[0].Term, candidates[0].Count)
	}
	if candidates[1].Term != "apple" || candidates[1].Count != 2 {
		t.Errorf("Expected 'apple' (2) second, got %q (%d)", candidates[1].Term, candidates[1].Count)
	}
}

func TestExtractStripsNoise(t *testing.T) {
	records := []core.SourceRecord{
		social("check https://example.com/page @someone #hashtag 12345 mocktail"),
	}

	candidates := NewExtractor().Extract(records)
	for _, c := range candidates {
		switch c.Term {
		case "https", "example", "someone", "hashtag":
			t.Errorf("Expected noise token %q to be stripped", c.Term)
		}
	}
	if _, ok := findTerm(candidates, "mocktail"); !ok {
		t.Error("Expected real token 'mocktail' to survive")
	}
}

func TestExtractFiltersStopWordsAndShortTokens(t *testing.T) {
	records := []core.SourceRecord{
		social("the na beer is for the win"),
	}

	candidates := NewExtractor().Extract(records)
	for _, c := range candidates {
		switch c.Term {
		case "the", "for", "is", "na":
			t.Errorf("Expected %q to be filtered out", c.Term)
		}
	}
}

func TestExtractSpansFilteredGaps(t *testing.T) {
	// Stop words are removed before n-gram generation, so "crisp" and
	// "finish" become adjacent.
	records := []core.SourceRecord{
		social("crisp and finish"),
	}

	candidates := NewExtractor().Extract(records)
	if _, ok := findTerm(candidates, "crisp finish"); !ok {
		t.Error("Expected bigram spanning a removed stop word")
	}
}

func TestExtractIgnoresNonSocialPlatforms(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: core.PlatformNews, Text: "newsword newsword newsword"},
		{Platform: core.PlatformTrends, Text: "trendword trendword"},
		social("socialword"),
	}

	candidates := NewExtractor().Extract(records)
	if _, ok := findTerm(candidates, "newsword"); ok {
		t.Error("Expected news text to be excluded from mining")
	}
	if _, ok := findTerm(candidates, "trendword"); ok {
		t.Error("Expected trends text to be excluded from mining")
	}
	if _, ok := findTerm(candidates, "socialword"); !ok {
		t.Error("Expected social text to be mined")
	}
}

func TestExtractHonorsTopK(t *testing.T) {
	records := []core.SourceRecord{
		social("alpha bravo charlie delta echo foxtrot golf hotel"),
	}

	e := NewExtractor()
	e.TopK = 5
	candidates := e.Extract(records)
	if len(candidates) != 5 {
		t.Errorf("Expected exactly 5 candidates, got %d", len(candidates))
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if got := NewExtractor().Extract(nil); len(got) != 0 {
		t.Errorf("Expected no candidates for empty input, got %d", len(got))
	}
}
