package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/feeds"
	"trendbrief/internal/logger"
	"trendbrief/internal/normalize"
)

// redditUserAgent is browser-like because reddit.com rejects default client
// user agents on its public feeds.
const redditUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) RedditRSSFetcher/1.0"

// RedditAdapter polls subreddit "new" feeds over public RSS, no auth.
type RedditAdapter struct {
	fetcher *feeds.Fetcher
	cfg     config.RedditSource
}

// NewRedditAdapter creates the Reddit adapter.
func NewRedditAdapter(cfg config.RedditSource) *RedditAdapter {
	return &RedditAdapter{
		fetcher: feeds.NewFetcher(redditUserAgent),
		cfg:     cfg,
	}
}

// Name identifies the adapter in raw artifact filenames and logs.
func (a *RedditAdapter) Name() string { return core.PlatformReddit }

// Fetch polls each configured subreddit. A failing subreddit is logged and
// skipped. Reddit supplies no engagement counters over RSS, so those fields
// stay absent.
func (a *RedditAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	var rows []core.RawRecord
	for _, sub := range a.cfg.Subreddits {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		feedURL := fmt.Sprintf("https://www.reddit.com/r/%s/new/.rss?limit=%d", sub, a.cfg.Limit)
		feed, err := a.fetcher.Fetch(feedURL)
		if err != nil {
			logger.Warn("Reddit feed fetch failed", "subreddit", sub, "error", err.Error())
			continue
		}

		for _, item := range feed.Items {
			rows = append(rows, core.RawRecord{
				"platform":  core.PlatformReddit,
				"subreddit": sub,
				"url":       item.Link,
				"ts":        item.Published,
				"title":     item.Title,
				"text":      HTMLToText(item.Summary),
			})
		}
	}
	return rows, nil
}

// HTMLToText reduces an HTML fragment (feed summaries are HTML) to its
// visible text. Unparseable input is returned whitespace-normalized as-is.
func HTMLToText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return normalize.CollapseWhitespace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return normalize.CollapseWhitespace(fragment)
	}
	return normalize.CollapseWhitespace(doc.Text())
}
