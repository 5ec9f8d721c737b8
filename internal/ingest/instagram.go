package ingest

import (
	"context"
	"fmt"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/logger"
)

const (
	instagramScraperActor = "apify~instagram-scraper"
	instagramHashtagActor = "apify~instagram-hashtag-scraper"
)

// InstagramAdapter scrapes creator posts and hashtag posts via Apify.
type InstagramAdapter struct {
	apify *ApifyClient
	cfg   config.InstagramSource
}

// NewInstagramAdapter creates the Instagram adapter.
func NewInstagramAdapter(apify *ApifyClient, cfg config.InstagramSource) *InstagramAdapter {
	return &InstagramAdapter{apify: apify, cfg: cfg}
}

// Name identifies the adapter in raw artifact filenames and logs.
func (a *InstagramAdapter) Name() string { return core.PlatformInstagram }

// Fetch scrapes each configured creator and hashtag. A failing creator or
// hashtag is logged and skipped; the rest still contribute rows.
func (a *InstagramAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	var rows []core.RawRecord

	for _, creator := range a.cfg.Creators {
		items, err := a.apify.RunActor(ctx, instagramScraperActor, map[string]any{
			"directUrls":         []string{"https://www.instagram.com/" + creator},
			"resultsType":        "posts",
			"resultsLimit":       a.cfg.CreatorLimit,
			"onlyPostsNewerThan": fmt.Sprintf("%d days", a.cfg.NewerThanDays),
			"addParentData":      false,
		})
		if err != nil {
			logger.Warn("Instagram creator scrape failed", "creator", creator, "error", err.Error())
			continue
		}
		for _, it := range items {
			rows = append(rows, core.RawRecord{
				"platform": core.PlatformInstagram,
				"kind":     "post",
				"author":   creator,
				"url":      itemString(it, "url", "postUrl"),
				"ts":       itemString(it, "timestamp", "takenAt"),
				"text":     itemString(it, "caption"),
				"likes":    itemValue(it, "likesCount"),
				"comments": itemValue(it, "commentsCount"),
				"shares":   nil,
				"hashtags": itemValue(it, "hashtags"),
			})
		}
	}

	for _, hashtag := range a.cfg.Hashtags {
		items, err := a.apify.RunActor(ctx, instagramHashtagActor, map[string]any{
			"hashtags":     []string{hashtag},
			"resultsLimit": a.cfg.HashtagLimit,
		})
		if err != nil {
			logger.Warn("Instagram hashtag scrape failed", "hashtag", hashtag, "error", err.Error())
			continue
		}
		for _, it := range items {
			rows = append(rows, core.RawRecord{
				"platform": core.PlatformInstagram,
				"kind":     "hashtag",
				"tag":      hashtag,
				"url":      itemString(it, "url"),
				"ts":       itemString(it, "firstCommentAt", "timestamp"),
				"text":     itemString(it, "caption"),
				"likes":    itemValue(it, "likesCount"),
				"comments": itemValue(it, "commentsCount"),
				"shares":   nil,
				"hashtags": itemValue(it, "hashtags"),
			})
		}
	}

	return rows, nil
}
