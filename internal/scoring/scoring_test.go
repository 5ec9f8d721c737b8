package scoring

import (
	"math"
	"testing"

	"trendbrief/internal/core"
)

func TestCoerceCount(t *testing.T) {
	cases := []struct {
		input    any
		expected int
	}{
		{nil, 0},
		{42, 42},
		{int64(7), 7},
		{float64(3.9), 3},
		{"15", 15},
		{" 8 ", 8},
		{"eleven", 0},
		{-5, 0},
		{"-3", 0},
		{true, 0},
		{[]any{1}, 0},
	}

	for _, tc := range cases {
		if got := CoerceCount(tc.input); got != tc.expected {
			t.Errorf("CoerceCount(%v) = %d, expected %d", tc.input, got, tc.expected)
		}
	}
}

func TestScoreZeroVariance(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x", Likes: 10},
		{Platform: "x", Likes: 10},
		{Platform: "x", Likes: 10},
	}

	scored := Score(records)
	for i, r := range scored {
		if r.Score == nil {
			t.Fatalf("Record %d has no score", i)
		}
		if *r.Score != 0.0 {
			t.Errorf("Expected 0.0 score for identical engagement, got %v", *r.Score)
		}
	}
}

func TestScoreSingleRecord(t *testing.T) {
	scored := Score([]core.SourceRecord{{Platform: "x", Likes: 100}})
	if len(scored) != 1 || scored[0].Score == nil {
		t.Fatal("Expected one scored record")
	}
	if *scored[0].Score != 0.0 {
		t.Errorf("Expected 0.0 for a single-record batch, got %v", *scored[0].Score)
	}
}

func TestScoreEmptyBatch(t *testing.T) {
	if got := Score(nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty batch, got %d records", len(got))
	}
}

func TestScoreOrdering(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x", Likes: 0},
		{Platform: "x", Likes: 1000, Comments: 50},
		{Platform: "x", Likes: 10},
	}

	scored := Score(records)
	if !(*scored[1].Score > *scored[2].Score && *scored[2].Score > *scored[0].Score) {
		t.Errorf("Expected scores ordered by engagement: %v, %v, %v",
			*scored[0].Score, *scored[1].Score, *scored[2].Score)
	}
}

func TestScoreDeterministicAndIdempotent(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "instagram", Likes: 5, Comments: 2},
		{Platform: "reddit", Likes: 80, Shares: 1},
		{Platform: "x", Likes: "12"},
	}

	first := Score(records)
	second := Score(first)

	for i := range first {
		if *first[i].Score != *second[i].Score {
			t.Errorf("Record %d: score changed on rescore: %v != %v",
				i, *first[i].Score, *second[i].Score)
		}
	}
}

func TestScoreCommentsAndSharesWeighDouble(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x", Likes: 20},
		{Platform: "x", Comments: 10},
		{Platform: "x", Shares: 10},
	}

	scored := Score(records)
	if *scored[1].Score != *scored[2].Score {
		t.Errorf("Expected comments and shares to weigh equally: %v != %v",
			*scored[1].Score, *scored[2].Score)
	}
	if *scored[0].Score != *scored[1].Score {
		t.Errorf("Expected 20 likes to equal 10 comments: %v != %v",
			*scored[0].Score, *scored[1].Score)
	}
}

func TestScoreRoundedToThreeDecimals(t *testing.T) {
	records := []core.SourceRecord{
		{Platform: "x", Likes: 1},
		{Platform: "x", Likes: 7},
		{Platform: "x", Likes: 33},
	}

	for _, r := range Score(records) {
		v := *r.Score * 1000
		if math.Abs(v-math.Round(v)) > 1e-6 {
			t.Errorf("Score %v not rounded to 3 decimals", *r.Score)
		}
	}
}
