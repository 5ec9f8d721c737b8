// Package slang mines frequent short phrases from free-text social posts.
package slang

import (
	"regexp"
	"sort"
	"strings"

	"trendbrief/internal/core"
)

const (
	// DefaultTopK is the number of candidates returned when none is configured.
	DefaultTopK = 50
	// DefaultMinTokenLen is the minimum token length kept for mining.
	DefaultMinTokenLen = 3
)

// socialPlatforms are the colloquial-speech sources mined for slang. News and
// search-interest records are excluded.
var socialPlatforms = map[string]bool{
	core.PlatformInstagram: true,
	core.PlatformX:         true,
	core.PlatformReddit:    true,
}

var (
	noiseRe = regexp.MustCompile(`http\S+|[@#]\w+|\d+`)
	tokenRe = regexp.MustCompile(`[a-z][a-z'\-]+`)
)

// stopWords is part of the extraction contract: common function words and a
// few contraction spellings removed before n-gram generation.
var stopWords = buildStopWords("the a an and or for with this that about from into over under your our their you we they of in on at to is are be was were been being will would can could should it its it's im i'm")

func buildStopWords(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Extractor mines top-K n-gram phrases from social post text.
type Extractor struct {
	TopK        int // Number of candidates to return
	MinTokenLen int // Minimum token length kept after filtering
}

// NewExtractor returns an extractor with the default limits.
func NewExtractor() *Extractor {
	return &Extractor{TopK: DefaultTopK, MinTokenLen: DefaultMinTokenLen}
}

// Extract concatenates the text of all social-platform records, strips URLs,
// mentions, hashtags and digit runs, removes stop words, and counts
// contiguous 1-, 2- and 3-grams over the filtered token stream. Filtering
// happens before n-gram generation, so grams can span originally non-adjacent
// words; that is what surfaces collocations like "hop water". Results are
// ordered by descending count, ties by first occurrence.
func (e *Extractor) Extract(records []core.SourceRecord) []core.SlangCandidate {
	var texts []string
	for _, r := range records {
		if socialPlatforms[r.Platform] && r.Text != "" {
			texts = append(texts, r.Text)
		}
	}

	corpus := strings.ToLower(strings.Join(texts, " "))
	corpus = noiseRe.ReplaceAllString(corpus, " ")

	var toks []string
	for _, t := range tokenRe.FindAllString(corpus, -1) {
		if len(t) >= e.MinTokenLen && !stopWords[t] {
			toks = append(toks, t)
		}
	}

	counts := make(map[string]int)
	var order []string
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(toks); i++ {
			gram := strings.Join(toks[i:i+n], " ")
			if counts[gram] == 0 {
				order = append(order, gram)
			}
			counts[gram]++
		}
	}

	candidates := make([]core.SlangCandidate, 0, len(order))
	for _, gram := range order {
		candidates = append(candidates, core.SlangCandidate{Term: gram, Count: counts[gram]})
	}
	// Stable sort keeps first-occurrence order for equal counts.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Count > candidates[j].Count
	})

	if len(candidates) > e.TopK {
		candidates = candidates[:e.TopK]
	}
	return candidates
}
