// Package scoring computes a comparable cross-platform engagement score for
// one batch of normalized records.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"trendbrief/internal/core"
)

// CoerceCount converts an engagement counter of unknown shape to a
// non-negative int. Anything that fails numeric coercion, or is negative,
// becomes 0. The original value on the record is left untouched.
func CoerceCount(v any) int {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	return int(f)
}

// rawSignal computes ln(1+base) where base weights comments and shares double
// relative to likes. Active engagement signals stronger resonance than
// passive likes.
func rawSignal(r core.SourceRecord) float64 {
	base := CoerceCount(r.Likes) + 2*CoerceCount(r.Comments) + 2*CoerceCount(r.Shares)
	return math.Log1p(float64(base))
}

// Score assigns each record a z-score of its raw engagement signal relative
// to the whole batch. A single global axis lets radically different platforms
// be ranked together without per-platform calibration. Scoring is
// deterministic and idempotent: it recomputes from the counters and ignores
// any prior score. Scores are batch-relative only and rounded to 3 decimals.
func Score(records []core.SourceRecord) []core.SourceRecord {
	signals := make([]float64, len(records))
	for i, r := range records {
		signals[i] = rawSignal(r)
	}

	var mu float64
	if len(signals) > 0 {
		var sum float64
		for _, s := range signals {
			sum += s
		}
		mu = sum / float64(len(signals))
	}

	// Population standard deviation; zero for batches of size <= 1 so the
	// divisor guard below kicks in.
	var sd float64
	if len(signals) > 1 {
		var sumSq float64
		for _, s := range signals {
			d := s - mu
			sumSq += d * d
		}
		sd = math.Sqrt(sumSq / float64(len(signals)))
	}

	div := sd
	if div <= 0 {
		div = 1.0
	}

	out := make([]core.SourceRecord, len(records))
	for i, r := range records {
		z := round3((signals[i] - mu) / div)
		r.Score = &z
		out[i] = r
	}
	return out
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
