// Package ingest contains the per-source adapters that produce raw records
// for one weekly run: Instagram and X via the Apify scraping platform,
// Reddit and news via RSS, and Google Trends with caching and backoff.
// Adapter failures are isolated per source; the run proceeds with whatever
// other sources succeeded.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trendbrief/internal/core"
)

const defaultApifyBaseURL = "https://api.apify.com"

// ApifyClient runs Apify actors synchronously and returns their dataset
// items.
type ApifyClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewApifyClient creates a client for the Apify run-sync API. Actor runs can
// take minutes, so the timeout is generous.
func NewApifyClient(token string, timeout time.Duration) *ApifyClient {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &ApifyClient{
		token:   token,
		baseURL: defaultApifyBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// RunActor runs an actor synchronously and returns its dataset items.
// Any 2xx status is accepted; the body may be a JSON array or NDJSON.
func (c *ApifyClient) RunActor(ctx context.Context, actorID string, input any) ([]core.RawRecord, error) {
	if c.token == "" {
		return nil, fmt.Errorf("apify token is not set: set APIFY_TOKEN or apify.token in config")
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode actor input: %w", err)
	}

	url := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s", c.baseURL, actorID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actor %s request failed: %w", actorID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read actor %s response: %w", actorID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("actor %s returned status %d: %s", actorID, resp.StatusCode, truncate(string(body), 200))
	}

	return decodeDatasetItems(body)
}

// decodeDatasetItems accepts a JSON array or newline-delimited JSON objects.
func decodeDatasetItems(body []byte) ([]core.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []core.RawRecord
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode dataset items: %w", err)
		}
		return items, nil
	}

	var items []core.RawRecord
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var item core.RawRecord
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("failed to decode dataset line: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// itemString returns the first non-empty string under any of the keys.
func itemString(item core.RawRecord, keys ...string) string {
	for _, key := range keys {
		if s, ok := item[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// itemValue returns the first non-nil value under any of the keys.
func itemValue(item core.RawRecord, keys ...string) any {
	for _, key := range keys {
		if v, ok := item[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// itemPath walks a dotted path of nested objects, returning "" when any hop
// is missing. Used for shapes like author.screen_name.
func itemPath(item core.RawRecord, path string) string {
	var cur any = map[string]any(item)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[key]
		if !ok {
			return ""
		}
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return ""
}

// dateStampUTC and sinceDays bound the scrape windows.
func dateStampUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

func sinceDays(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
}
