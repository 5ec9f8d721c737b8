package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendbrief/internal/core"
)

func TestDecodeDatasetItemsArray(t *testing.T) {
	items, err := decodeDatasetItems([]byte(`[{"url":"https://x.com/1"},{"url":"https://x.com/2"}]`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0]["url"] != "https://x.com/1" {
		t.Errorf("Unexpected first item: %v", items[0])
	}
}

func TestDecodeDatasetItemsNDJSON(t *testing.T) {
	body := "{\"url\":\"https://x.com/1\"}\n\n{\"url\":\"https://x.com/2\"}\n"
	items, err := decodeDatasetItems([]byte(body))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
}

func TestDecodeDatasetItemsEmpty(t *testing.T) {
	items, err := decodeDatasetItems([]byte("  \n "))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
}

func TestRunActorPostsInputAndToken(t *testing.T) {
	var gotPath, gotQuery string
	var gotInput map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotInput)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	client := NewApifyClient("secret", time.Minute)
	client.baseURL = srv.URL

	items, err := client.RunActor(context.Background(), "vendor~actor", map[string]any{"limit": 5})
	if err != nil {
		t.Fatalf("RunActor failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(items))
	}
	if gotPath != "/v2/acts/vendor~actor/run-sync-get-dataset-items" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotQuery, "token=secret") {
		t.Errorf("Expected token in query, got %s", gotQuery)
	}
	if gotInput["limit"] != float64(5) {
		t.Errorf("Unexpected actor input: %v", gotInput)
	}
}

func TestRunActorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad input"}`))
	}))
	defer srv.Close()

	client := NewApifyClient("secret", time.Minute)
	client.baseURL = srv.URL

	if _, err := client.RunActor(context.Background(), "vendor~actor", nil); err == nil {
		t.Error("Expected error for 4xx status")
	}
}

func TestRunActorRequiresToken(t *testing.T) {
	client := NewApifyClient("", time.Minute)
	if _, err := client.RunActor(context.Background(), "vendor~actor", nil); err == nil {
		t.Error("Expected error when token is missing")
	}
}

func TestItemString(t *testing.T) {
	item := core.RawRecord{"a": "", "b": "value", "c": 3}
	if got := itemString(item, "a", "b", "c"); got != "value" {
		t.Errorf("Expected first non-empty string, got %q", got)
	}
	if got := itemString(item, "missing"); got != "" {
		t.Errorf("Expected empty for missing keys, got %q", got)
	}
}

func TestItemPath(t *testing.T) {
	item := core.RawRecord{
		"author": map[string]any{"screen_name": "someone"},
	}
	if got := itemPath(item, "author.screen_name"); got != "someone" {
		t.Errorf("Expected nested lookup, got %q", got)
	}
	if got := itemPath(item, "author.missing"); got != "" {
		t.Errorf("Expected empty for missing leaf, got %q", got)
	}
	if got := itemPath(item, "author.screen_name.deeper"); got != "" {
		t.Errorf("Expected empty when path descends into a string, got %q", got)
	}
}

func TestHTMLToText(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"<p>hello <b>world</b></p>", "hello world"},
		{"plain   text", "plain text"},
		{"<div><span>a</span> <span>b</span></div>", "a b"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := HTMLToText(tc.input); got != tc.expected {
			t.Errorf("HTMLToText(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}
