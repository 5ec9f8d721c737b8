package ingest

import (
	"context"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/feeds"
	"trendbrief/internal/logger"
)

// NewsAdapter pulls configured news RSS feeds.
type NewsAdapter struct {
	fetcher *feeds.Fetcher
	cfg     config.NewsSource
}

// NewNewsAdapter creates the news adapter.
func NewNewsAdapter(cfg config.NewsSource) *NewsAdapter {
	return &NewsAdapter{
		fetcher: feeds.NewFetcher("trendbrief/1.0"),
		cfg:     cfg,
	}
}

// Name identifies the adapter in raw artifact filenames and logs.
func (a *NewsAdapter) Name() string { return core.PlatformNews }

// Fetch pulls every configured feed; a failing feed is logged and skipped.
func (a *NewsAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	var rows []core.RawRecord
	for _, feedURL := range a.cfg.RSS {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		feed, err := a.fetcher.Fetch(feedURL)
		if err != nil {
			logger.Warn("News feed fetch failed", "feed", feedURL, "error", err.Error())
			continue
		}

		for _, item := range feed.Items {
			rows = append(rows, core.RawRecord{
				"platform": core.PlatformNews,
				"source":   feedURL,
				"url":      item.Link,
				"ts":       item.Published,
				"title":    item.Title,
				"text":     HTMLToText(item.Summary),
			})
		}
	}
	return rows, nil
}
