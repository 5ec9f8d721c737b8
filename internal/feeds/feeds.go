// Package feeds provides RSS/Atom feed fetching and parsing for the Reddit
// and news adapters. Published timestamps are passed through as opaque
// strings; the pipeline never parses them.
package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RSS represents an RSS feed structure.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Channel Channel  `xml:"channel"`
}

// Channel represents an RSS channel.
type Channel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Items       []RSSItem `xml:"item"`
}

// RSSItem represents an RSS item.
type RSSItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// Atom represents an Atom feed structure.
type Atom struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []AtomEntry `xml:"entry"`
}

// AtomLink represents an Atom link element.
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// AtomEntry represents an Atom entry.
type AtomEntry struct {
	Title     string     `xml:"title"`
	Link      []AtomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	ID        string     `xml:"id"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// Item is one feed entry in source-neutral form. Summary may contain HTML;
// callers decide how to reduce it.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Published string
	Author    string
	GUID      string
}

// ParsedFeed is a parsed feed: its title and entries in feed order.
type ParsedFeed struct {
	Title string
	Items []Item
}

// Fetcher fetches and parses feeds over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a feed fetcher. Reddit rejects default Go user agents,
// so a browser-like one is passed in.
func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
	}
}

// Fetch retrieves and parses the feed at feedURL, trying RSS first and
// falling back to Atom.
func (f *Fetcher) Fetch(feedURL string) (*ParsedFeed, error) {
	req, err := http.NewRequest(http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return Parse(body)
}

// Parse decodes feed bytes as RSS or Atom.
func Parse(body []byte) (*ParsedFeed, error) {
	var rss RSS
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&rss); err == nil && rss.Channel.Title != "" {
		return parseRSS(rss), nil
	}

	var atom Atom
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&atom); err == nil && (atom.Title != "" || len(atom.Entries) > 0) {
		return parseAtom(atom), nil
	}

	return nil, fmt.Errorf("unable to parse as RSS or Atom feed")
}

// parseRSS converts RSS data to neutral items.
func parseRSS(rss RSS) *ParsedFeed {
	feed := &ParsedFeed{Title: rss.Channel.Title}
	for _, item := range rss.Channel.Items {
		feed.Items = append(feed.Items, Item{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Published: item.PubDate,
			GUID:      item.GUID,
		})
	}
	return feed
}

// parseAtom converts Atom data to neutral items. Reddit's feeds are Atom
// with the body under content.
func parseAtom(atom Atom) *ParsedFeed {
	feed := &ParsedFeed{Title: atom.Title}
	for _, entry := range atom.Entries {
		var link string
		for _, l := range entry.Link {
			if l.Rel == "" || l.Rel == "alternate" {
				link = l.Href
				break
			}
		}

		summary := entry.Summary
		if summary == "" {
			summary = entry.Content
		}
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}

		feed.Items = append(feed.Items, Item{
			Title:     entry.Title,
			Link:      link,
			Summary:   summary,
			Published: published,
			Author:    entry.Author.Name,
			GUID:      entry.ID,
		})
	}
	return feed
}
