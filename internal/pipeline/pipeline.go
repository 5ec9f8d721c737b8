// Package pipeline composes the context-preparation stages into the payload
// handed to the brief generator.
package pipeline

import (
	"trendbrief/internal/core"
	"trendbrief/internal/normalize"
	"trendbrief/internal/sample"
	"trendbrief/internal/scoring"
	"trendbrief/internal/slang"
)

// Options configures the context-preparation stages. The zero value selects
// the defaults of each stage.
type Options struct {
	PerPlatform int // Balanced sample cap per platform
	SlangTopK   int // Number of slang candidates to keep
	SlangMinLen int // Minimum token length for slang mining
}

// Prepare runs the whole batch transformation: dedup + normalization,
// engagement scoring, slang extraction, balanced sampling, and assembly of
// the context payload. One call handles one fully-materialized ingestion
// batch; there is no shared state between calls.
func Prepare(rows []core.RawRecord, opts Options) core.ContextPayload {
	records := scoring.Score(normalize.Records(rows))

	extractor := slang.NewExtractor()
	if opts.SlangTopK > 0 {
		extractor.TopK = opts.SlangTopK
	}
	if opts.SlangMinLen > 0 {
		extractor.MinTokenLen = opts.SlangMinLen
	}

	return Assemble(records, sample.Balanced(records, opts.PerPlatform), extractor.Extract(records))
}

// Assemble builds the ContextPayload from the scored batch, the balanced
// sample, and the slang candidates. Pure shape assembly: the full reddit and
// news subsets ride along for grounding.
func Assemble(records, topPosts []core.SourceRecord, candidates []core.SlangCandidate) core.ContextPayload {
	byPlatform := make(map[string]int)
	redditPosts := []core.SourceRecord{}
	newsArticles := []core.SourceRecord{}
	for _, r := range records {
		byPlatform[r.Platform]++
		switch r.Platform {
		case core.PlatformReddit:
			redditPosts = append(redditPosts, r)
		case core.PlatformNews:
			newsArticles = append(newsArticles, r)
		}
	}

	if topPosts == nil {
		topPosts = []core.SourceRecord{}
	}
	if candidates == nil {
		candidates = []core.SlangCandidate{}
	}

	return core.ContextPayload{
		Summary: core.ContextSummary{
			TotalItems: len(records),
			ByPlatform: byPlatform,
		},
		TopPosts:        topPosts,
		SlangCandidates: candidates,
		RedditPosts:     redditPosts,
		NewsArticles:    newsArticles,
	}
}
