package ingest

import (
	"context"
	"fmt"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
)

const xScraperActor = "xtdata~twitter-x-scraper"

// XAdapter scrapes X search results via Apify. Field names follow the
// actor's output example: full_text, created_at, favorite_count,
// retweet_count, reply_count, author.screen_name.
type XAdapter struct {
	apify *ApifyClient
	cfg   config.XSource
}

// NewXAdapter creates the X adapter.
func NewXAdapter(apify *ApifyClient, cfg config.XSource) *XAdapter {
	return &XAdapter{apify: apify, cfg: cfg}
}

// Name identifies the adapter in raw artifact filenames and logs.
func (a *XAdapter) Name() string { return core.PlatformX }

// Fetch runs one search scrape over the configured terms and window.
func (a *XAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	if len(a.cfg.SearchTerms) == 0 {
		return nil, nil
	}

	items, err := a.apify.RunActor(ctx, xScraperActor, map[string]any{
		"searchTerms":        a.cfg.SearchTerms,
		"tweetLanguage":      a.cfg.TweetLanguage,
		"start":              sinceDays(a.cfg.DaysBack),
		"end":                dateStampUTC(),
		"sort":               a.cfg.Sort,
		"maxItems":           a.cfg.MaxItems,
		"includeSearchTerms": false,
	})
	if err != nil {
		return nil, fmt.Errorf("x search scrape failed: %w", err)
	}

	var rows []core.RawRecord
	for _, it := range items {
		author := itemPath(it, "author.screen_name")
		if author == "" {
			author = itemPath(it, "author.name")
		}
		rows = append(rows, core.RawRecord{
			"platform": core.PlatformX,
			"url":      itemString(it, "url", "twitterUrl"),
			"author":   author,
			"ts":       itemString(it, "created_at", "date", "timeParsed"),
			"text":     itemString(it, "full_text"),
			"likes":    itemValue(it, "favorite_count"),
			"comments": itemValue(it, "reply_count"),
			"shares":   itemValue(it, "retweet_count"),
		})
	}
	return rows, nil
}
