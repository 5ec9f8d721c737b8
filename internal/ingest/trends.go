package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/logger"
)

const (
	// trendsBatchSize caps terms per request; the trends backend rejects
	// larger groups.
	trendsBatchSize = 5
	// trendsMaxAttempts bounds the backoff loop per batch.
	trendsMaxAttempts = 6
	// trendsCacheTTL keeps responses for the rest of the day.
	trendsCacheTTL = 24 * time.Hour
)

// TrendsCache is the per-day response cache for trends requests.
type TrendsCache interface {
	GetCachedTrends(key string, maxAge time.Duration) (string, error)
	CacheTrends(key, payload string) error
}

// TrendsAdapter fetches search-interest series through an Apify trends
// actor, with jittered exponential backoff, polite pacing between batches,
// and a per-day cache so reruns do not repeat calls.
type TrendsAdapter struct {
	apify   *ApifyClient
	cfg     config.TrendsSource
	cache   TrendsCache
	limiter *rate.Limiter
}

// NewTrendsAdapter creates the trends adapter. cache may be nil, which
// disables caching.
func NewTrendsAdapter(apify *ApifyClient, cfg config.TrendsSource, cache TrendsCache) *TrendsAdapter {
	return &TrendsAdapter{
		apify:   apify,
		cfg:     cfg,
		cache:   cache,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Name identifies the adapter in raw artifact filenames and logs.
func (a *TrendsAdapter) Name() string { return core.PlatformTrends }

// Fetch processes the configured terms in batches of at most five. A batch
// that keeps failing contributes error rows rather than aborting the source.
func (a *TrendsAdapter) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	var rows []core.RawRecord
	for start := 0; start < len(a.cfg.Terms); start += trendsBatchSize {
		end := start + trendsBatchSize
		if end > len(a.cfg.Terms) {
			end = len(a.cfg.Terms)
		}
		batch := a.cfg.Terms[start:end]

		batchRows, err := a.fetchBatch(ctx, batch)
		if err != nil {
			return rows, err
		}
		rows = append(rows, batchRows...)
	}
	return rows, nil
}

// fetchBatch serves one term group from cache or upstream with backoff.
func (a *TrendsAdapter) fetchBatch(ctx context.Context, terms []string) ([]core.RawRecord, error) {
	key := a.cacheKey(terms)
	if a.cache != nil {
		if payload, err := a.cache.GetCachedTrends(key, trendsCacheTTL); err == nil && payload != "" {
			var rows []core.RawRecord
			if err := json.Unmarshal([]byte(payload), &rows); err == nil {
				logger.Debug("Trends cache hit", "terms", terms)
				return rows, nil
			}
		}
	}

	for attempt := 1; ; attempt++ {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		items, err := a.apify.RunActor(ctx, a.cfg.Actor, map[string]any{
			"searchTerms": terms,
			"geo":         a.cfg.Geo,
			"timeRange":   a.cfg.TimeRange,
		})
		if err == nil {
			rows := a.mapItems(items)
			if a.cache != nil {
				if payload, merr := json.Marshal(rows); merr == nil {
					if cerr := a.cache.CacheTrends(key, string(payload)); cerr != nil {
						logger.Warn("Trends cache write failed", "error", cerr.Error())
					}
				}
			}
			return rows, nil
		}

		if attempt >= trendsMaxAttempts {
			logger.Warn("Trends batch failed after retries", "terms", terms, "error", err.Error())
			return a.errorRows(terms, err), nil
		}

		// Backoff up to 60s with jitter.
		wait := time.Duration(math.Min(60, math.Exp2(float64(attempt)))) * time.Second
		wait += time.Duration(rand.Int63n(int64(time.Second)))
		logger.Debug("Trends batch backing off", "terms", terms, "attempt", attempt, "wait", wait.String())

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// mapItems converts actor dataset items to raw trends rows.
func (a *TrendsAdapter) mapItems(items []core.RawRecord) []core.RawRecord {
	var rows []core.RawRecord
	for _, it := range items {
		rows = append(rows, core.RawRecord{
			"platform": core.PlatformTrends,
			"term":     itemString(it, "term", "searchTerm", "keyword"),
			"ts":       itemString(it, "ts", "date", "time"),
			"value":    itemValue(it, "value", "interest"),
		})
	}
	return rows
}

// errorRows marks each term of a failed batch so the gap is visible in the
// combined output.
func (a *TrendsAdapter) errorRows(terms []string, err error) []core.RawRecord {
	rows := make([]core.RawRecord, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, core.RawRecord{
			"platform": core.PlatformTrends,
			"term":     term,
			"error":    err.Error(),
		})
	}
	return rows
}

// cacheKey is stable per day, geo, time range, and term group.
func (a *TrendsAdapter) cacheKey(terms []string) string {
	blob, _ := json.Marshal(struct {
		Date  string   `json:"d"`
		Geo   string   `json:"geo"`
		Range string   `json:"range"`
		Terms []string `json:"terms"`
	}{dateStampUTC(), a.cfg.Geo, a.cfg.TimeRange, terms})
	sum := sha1.Sum(blob)
	return hex.EncodeToString(sum[:])
}
