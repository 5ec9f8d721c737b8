// Package sample selects a bounded, platform-fair subset of scored records.
package sample

import (
	"sort"

	"trendbrief/internal/core"
)

// DefaultPerPlatform caps how many records each platform contributes.
const DefaultPerPlatform = 60

// Balanced groups records by platform and takes the top N by score from each
// group, so every platform present in the input appears in the output and no
// high-volume source crowds the others out. Within a group the sort is stable:
// equal scores keep their original relative order. Platforms are emitted in
// first-seen input order; no global ranking across platforms is implied.
func Balanced(records []core.SourceRecord, perPlatform int) []core.SourceRecord {
	if perPlatform <= 0 {
		perPlatform = DefaultPerPlatform
	}

	byPlatform := make(map[string][]core.SourceRecord)
	var platforms []string
	for _, r := range records {
		if _, ok := byPlatform[r.Platform]; !ok {
			platforms = append(platforms, r.Platform)
		}
		byPlatform[r.Platform] = append(byPlatform[r.Platform], r)
	}

	var out []core.SourceRecord
	for _, p := range platforms {
		group := byPlatform[p]
		sort.SliceStable(group, func(i, j int) bool {
			return scoreOf(group[i]) > scoreOf(group[j])
		})
		if len(group) > perPlatform {
			group = group[:perPlatform]
		}
		out = append(out, group...)
	}
	return out
}

func scoreOf(r core.SourceRecord) float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}
