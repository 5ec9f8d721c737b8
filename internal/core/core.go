package core

import "time"

// Platform tags for SourceRecord. The set is open: adapters may introduce new
// platforms and the pipeline treats any lowercased string as valid.
const (
	PlatformInstagram = "instagram"
	PlatformX         = "x"
	PlatformReddit    = "reddit"
	PlatformNews      = "news"
	PlatformTrends    = "trends"
)

// RawRecord is one row as produced by a source adapter, before normalization.
// Adapters emit heterogeneous shapes, so the raw form stays a plain map.
type RawRecord map[string]any

// SourceRecord is the canonical unit flowing through the pipeline after
// normalization. Engagement counters keep whatever value the source supplied
// (nil, number, or malformed string); the scorer coerces them on read.
type SourceRecord struct {
	Platform  string   `json:"platform"`           // Lowercased source tag (instagram, x, reddit, news, trends)
	Kind      string   `json:"kind,omitempty"`     // Sub-kind within a platform (e.g. "post", "hashtag")
	Timestamp string   `json:"ts,omitempty"`       // Source timestamp, preserved as an opaque string
	Author    string   `json:"author,omitempty"`   // Author handle, or subreddit when no author exists
	URL       string   `json:"url,omitempty"`      // External locator; primary dedup key
	Title     string   `json:"title,omitempty"`    // Whitespace-normalized title
	Text      string   `json:"text"`               // Whitespace-normalized body text
	Likes     any      `json:"likes,omitempty"`    // Like count as supplied by the source
	Comments  any      `json:"comments,omitempty"` // Comment count as supplied by the source
	Shares    any      `json:"shares,omitempty"`   // Share/retweet count as supplied by the source
	Hashtags  []string `json:"hashtags,omitempty"` // Source-provided hashtags, order preserved
	Tag       string   `json:"tag,omitempty"`      // Hashtag scope for hashtag-sourced records
	Term      string   `json:"term,omitempty"`     // Search-interest query term (trends only)
	Value     any      `json:"value,omitempty"`    // Search-interest index for one point in time (trends only)
	Score     *float64 `json:"score,omitempty"`    // Batch-relative engagement z-score; nil until scored
}

// SlangCandidate is one mined phrase with its corpus frequency.
type SlangCandidate struct {
	Term  string `json:"term"`  // The n-gram phrase
	Count int    `json:"count"` // Occurrences across the corpus
}

// ContextSummary holds aggregate counts for a prepared batch.
type ContextSummary struct {
	TotalItems int            `json:"total_items"` // Records surviving normalization
	ByPlatform map[string]int `json:"by_platform"` // Record count per platform
}

// ContextPayload is the structured hand-off object consumed by the
// brief-generation step. It is a pure snapshot of one run's batch.
type ContextPayload struct {
	Summary         ContextSummary   `json:"summary"`          // Aggregate counts
	TopPosts        []SourceRecord   `json:"top_posts"`        // Platform-balanced top-scoring sample
	SlangCandidates []SlangCandidate `json:"slang_candidates"` // Mined phrases, descending by count
	RedditPosts     []SourceRecord   `json:"reddit_posts"`     // Full reddit subset for grounding
	NewsArticles    []SourceRecord   `json:"news_articles"`    // Full news subset for grounding
}

// Brief represents one generated weekly brief.
type Brief struct {
	ID            string    `json:"id"`             // Unique identifier for the brief
	RunID         string    `json:"run_id"`         // Run this brief belongs to
	Markdown      string    `json:"markdown"`       // Generated Markdown text
	ModelUsed     string    `json:"model_used"`     // LLM model used for generation
	DateGenerated time.Time `json:"date_generated"` // When the brief was generated
}

// Run represents one pipeline invocation with its isolated working set.
type Run struct {
	ID        string    `json:"id"`         // Run identifier (namespace for artifacts)
	DateStamp string    `json:"date_stamp"` // UTC date stamp used in artifact filenames
	CreatedAt time.Time `json:"created_at"` // When the run was created
	Status    string    `json:"status"`     // Last completed stage (ingested, prepared, generated, rendered)
}
