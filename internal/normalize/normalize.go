// Package normalize canonicalizes heterogeneous source records into the
// common SourceRecord shape and removes duplicates.
package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"trendbrief/internal/core"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CollapseWhitespace collapses runs of whitespace to single spaces and trims
// the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// contentHash returns a stable hex digest of the whitespace-normalized text.
// The key space only has to be consistent within one run.
func contentHash(s string) string {
	sum := md5.Sum([]byte(CollapseWhitespace(s)))
	return hex.EncodeToString(sum[:])
}

// DedupKey returns the identity used to decide two raw rows are the same
// post: the URL when present, otherwise a content hash of the text (falling
// back to the title). A row with no identifying fields hashes the empty
// string; such rows collide and only the first survives.
func DedupKey(r core.RawRecord) string {
	if url := stringField(r, "url"); url != "" {
		return url
	}
	body := stringField(r, "text")
	if body == "" {
		body = stringField(r, "title")
	}
	return contentHash(body)
}

// Records deduplicates raw rows in input order (first-seen wins) and maps the
// survivors onto the canonical SourceRecord shape. Malformed rows never fail;
// unrecognized or missing fields default to empty.
func Records(rows []core.RawRecord) []core.SourceRecord {
	seen := make(map[string]struct{}, len(rows))
	cleaned := make([]core.SourceRecord, 0, len(rows))

	for _, r := range rows {
		key := DedupKey(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		author := stringField(r, "author")
		if author == "" {
			author = stringField(r, "subreddit")
		}
		text := stringField(r, "text")
		if text == "" {
			text = stringField(r, "caption")
		}

		cleaned = append(cleaned, core.SourceRecord{
			Platform:  strings.ToLower(stringField(r, "platform")),
			Kind:      stringField(r, "kind"),
			Timestamp: stringField(r, "ts"),
			Author:    author,
			URL:       stringField(r, "url"),
			Title:     CollapseWhitespace(stringField(r, "title")),
			Text:      CollapseWhitespace(text),
			Likes:     r["likes"],
			Comments:  r["comments"],
			Shares:    r["shares"],
			Hashtags:  stringSliceField(r, "hashtags"),
			Tag:       stringField(r, "tag"),
			Term:      stringField(r, "term"),
			Value:     r["value"],
		})
	}

	return cleaned
}

// stringField returns the value under key when it is a string, else "".
func stringField(r core.RawRecord, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// stringSliceField returns the string elements of a list-valued field.
// JSON decoding yields []any, so both slice shapes are handled.
func stringSliceField(r core.RawRecord, key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
