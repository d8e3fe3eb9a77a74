package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogopts/internal/options"
)

func TestIngestBatch(t *testing.T) {
	store := newTestStore(t)

	var entries []string
	for i := 1; i <= 20; i++ {
		entries = append(entries, fmt.Sprintf(
			`"blog-%02d": {"default_category": {"value": "%d"}, "default_post_format": {"value": "standard"}}`, i, i))
	}
	body := "{" + strings.Join(entries, ",") + "}"

	r := httptest.NewRequest(http.MethodPost, "/api/blogs/options", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	IngestBatch(store, options.Extractor{}, 8).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp batchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(resp.Snapshots) != 20 {
		t.Fatalf("got %d snapshots, want 20", len(resp.Snapshots))
	}
	if len(resp.Failed) != 0 {
		t.Errorf("got %d failures, want 0: %v", len(resp.Failed), resp.Failed)
	}

	// Snapshots come back sorted by blog ID.
	for i := 1; i < len(resp.Snapshots); i++ {
		prev, cur := resp.Snapshots[i-1].Snapshot.BlogID, resp.Snapshots[i].Snapshot.BlogID
		if prev >= cur {
			t.Fatalf("snapshots not sorted: %q before %q", prev, cur)
		}
	}

	// Defaults travel with each entry.
	first := resp.Snapshots[0]
	if first.Defaults.DefaultCategoryID == nil || *first.Defaults.DefaultCategoryID != 1 {
		t.Errorf("blog-01 default_category_id = %v, want 1", first.Defaults.DefaultCategoryID)
	}

	// Every blog landed in the store.
	summaries, err := store.ListSnapshots(r.Context())
	if err != nil {
		t.Fatalf("ListSnapshots error: %v", err)
	}
	if len(summaries) != 20 {
		t.Errorf("store holds %d snapshots, want 20", len(summaries))
	}
}

func TestIngestBatch_EmptyBody(t *testing.T) {
	store := newTestStore(t)

	r := httptest.NewRequest(http.MethodPost, "/api/blogs/options", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	IngestBatch(store, options.Extractor{}, 8).ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestIngestBatch_InvalidJSON(t *testing.T) {
	store := newTestStore(t)

	r := httptest.NewRequest(http.MethodPost, "/api/blogs/options", bytes.NewBufferString(`[1, 2]`))
	w := httptest.NewRecorder()

	IngestBatch(store, options.Extractor{}, 8).ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}
