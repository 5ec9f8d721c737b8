package sample

import (
	"testing"

	"trendbrief/internal/core"
)

func rec(platform string, score float64, url string) core.SourceRecord {
	return core.SourceRecord{Platform: platform, URL: url, Score: &score}
}

func TestBalancedCapsPerPlatform(t *testing.T) {
	var records []core.SourceRecord
	for i := 0; i < 10; i++ {
		records = append(records, rec("x", float64(i), ""))
	}
	for i := 0; i < 3; i++ {
		records = append(records, rec("reddit", float64(i), ""))
	}

	out := Balanced(records, 5)

	counts := make(map[string]int)
	for _, r := range out {
		counts[r.Platform]++
	}
	if counts["x"] != 5 {
		t.Errorf("Expected 5 x records, got %d", counts["x"])
	}
	if counts["reddit"] != 3 {
		t.Errorf("Expected all 3 reddit records, got %d", counts["reddit"])
	}
}

func TestBalancedEveryPlatformRepresented(t *testing.T) {
	records := []core.SourceRecord{
		rec("instagram", 2.0, ""),
		rec("x", 1.0, ""),
		rec("reddit", -0.5, ""),
		rec("news", 0.0, ""),
	}

	out := Balanced(records, 2)

	seen := make(map[string]bool)
	for _, r := range out {
		seen[r.Platform] = true
	}
	for _, p := range []string{"instagram", "x", "reddit", "news"} {
		if !seen[p] {
			t.Errorf("Expected platform %s in the sample", p)
		}
	}
}

func TestBalancedTakesTopScorers(t *testing.T) {
	records := []core.SourceRecord{
		rec("x", 0.1, "https://x.com/low"),
		rec("x", 2.5, "https://x.com/high"),
		rec("x", 1.0, "https://x.com/mid"),
	}

	out := Balanced(records, 2)
	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}
	if out[0].URL != "https://x.com/high" || out[1].URL != "https://x.com/mid" {
		t.Errorf("Expected top scorers in descending order, got %s then %s", out[0].URL, out[1].URL)
	}
}

func TestBalancedStableForEqualScores(t *testing.T) {
	records := []core.SourceRecord{
		rec("x", 1.0, "https://x.com/first"),
		rec("x", 1.0, "https://x.com/second"),
	}

	out := Balanced(records, 2)
	if out[0].URL != "https://x.com/first" || out[1].URL != "https://x.com/second" {
		t.Error("Expected equal scores to keep input order")
	}
}

func TestBalancedUnscoredTreatedAsZero(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x", URL: "https://x.com/unscored"},
		rec("x", -1.0, "https://x.com/negative"),
	}

	out := Balanced(records, 2)
	if out[0].URL != "https://x.com/unscored" {
		t.Errorf("Expected unscored record (0.0) to rank above negative, got %s first", out[0].URL)
	}
}

func TestBalancedDefaultCap(t *testing.T) {
	var records []core.SourceRecord
	for i := 0; i < DefaultPerPlatform+10; i++ {
		records = append(records, rec("x", float64(i), ""))
	}

	out := Balanced(records, 0)
	if len(out) != DefaultPerPlatform {
		t.Errorf("Expected default cap of %d, got %d", DefaultPerPlatform, len(out))
	}
}

func TestBalancedEmptyInput(t *testing.T) {
	if out := Balanced(nil, 5); len(out) != 0 {
		t.Errorf("Expected empty sample, got %d records", len(out))
	}
}
