package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogopts/internal/models"
	"blogopts/internal/options"
)

func TestIngestThenGetBlogOptions(t *testing.T) {
	store := newTestStore(t)

	// Ingest a legacy-shape response.
	body := `{
		"default_category":    {"value": "5"},
		"default_post_format": {"value": "standard"},
		"blog_title":          {"value": "My Blog"}
	}`
	postR := withBlogID(httptest.NewRequest(http.MethodPost, "/api/blogs/blog-1/options", bytes.NewBufferString(body)), "blog-1")
	postW := httptest.NewRecorder()

	IngestBlogOptions(store, options.Extractor{}).ServeHTTP(postW, postR)

	if postW.Code != http.StatusOK {
		t.Fatalf("POST got status %d, want %d; body: %s", postW.Code, http.StatusOK, postW.Body.String())
	}

	var ingest snapshotResponse
	if err := json.NewDecoder(postW.Body).Decode(&ingest); err != nil {
		t.Fatalf("decoding ingest response: %v", err)
	}
	if ingest.Snapshot == nil || ingest.Snapshot.BlogID != "blog-1" {
		t.Fatalf("ingest snapshot = %+v, want blog-1", ingest.Snapshot)
	}
	if ingest.Defaults.DefaultCategoryID == nil || *ingest.Defaults.DefaultCategoryID != 5 {
		t.Errorf("ingest default_category_id = %v, want 5", ingest.Defaults.DefaultCategoryID)
	}

	// Read the stored snapshot back.
	getR := withBlogID(httptest.NewRequest(http.MethodGet, "/api/blogs/blog-1/options", nil), "blog-1")
	getW := httptest.NewRecorder()

	GetBlogOptions(store).ServeHTTP(getW, getR)

	if getW.Code != http.StatusOK {
		t.Fatalf("GET got status %d, want %d", getW.Code, http.StatusOK)
	}

	var snap models.OptionsSnapshot
	if err := json.NewDecoder(getW.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if len(snap.Options) != 3 {
		t.Errorf("got %d stored options, want 3", len(snap.Options))
	}
	if v, ok := snap.Options.Get("blog_title"); !ok || v.Text() != "My Blog" {
		t.Errorf("blog_title = (%q, %v), want (My Blog, true)", v.Text(), ok)
	}
}

func TestGetBlogOptionsNotFound(t *testing.T) {
	store := newTestStore(t)

	r := withBlogID(httptest.NewRequest(http.MethodGet, "/api/blogs/missing/options", nil), "missing")
	w := httptest.NewRecorder()

	GetBlogOptions(store).ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetBlogDefaults(t *testing.T) {
	store := newTestStore(t)

	body := `{"default_category": {"value": "5"}, "default_post_format": {"value": ""}}`
	postR := withBlogID(httptest.NewRequest(http.MethodPost, "/api/blogs/blog-1/options", bytes.NewBufferString(body)), "blog-1")
	IngestBlogOptions(store, options.Extractor{}).ServeHTTP(httptest.NewRecorder(), postR)

	r := withBlogID(httptest.NewRequest(http.MethodGet, "/api/blogs/blog-1/defaults", nil), "blog-1")
	w := httptest.NewRecorder()

	GetBlogDefaults(store, options.Extractor{}).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var defaults models.BlogDefaults
	if err := json.NewDecoder(w.Body).Decode(&defaults); err != nil {
		t.Fatalf("decoding defaults: %v", err)
	}
	if defaults.DefaultCategoryID == nil || *defaults.DefaultCategoryID != 5 {
		t.Errorf("default_category_id = %v, want 5", defaults.DefaultCategoryID)
	}
	// Empty post format is stored as an option but treated as unset.
	if defaults.DefaultPostFormat != nil {
		t.Errorf("default_post_format = %q, want nil", *defaults.DefaultPostFormat)
	}
}

func TestDeleteBlogOptions(t *testing.T) {
	store := newTestStore(t)

	body := `{"blog_title": {"value": "My Blog"}}`
	postR := withBlogID(httptest.NewRequest(http.MethodPost, "/api/blogs/blog-1/options", bytes.NewBufferString(body)), "blog-1")
	IngestBlogOptions(store, options.Extractor{}).ServeHTTP(httptest.NewRecorder(), postR)

	delR := withBlogID(httptest.NewRequest(http.MethodDelete, "/api/blogs/blog-1/options", nil), "blog-1")
	delW := httptest.NewRecorder()

	DeleteBlogOptions(store).ServeHTTP(delW, delR)

	if delW.Code != http.StatusOK {
		t.Fatalf("DELETE got status %d, want %d", delW.Code, http.StatusOK)
	}

	// A second delete reports not found.
	delR2 := withBlogID(httptest.NewRequest(http.MethodDelete, "/api/blogs/blog-1/options", nil), "blog-1")
	delW2 := httptest.NewRecorder()

	DeleteBlogOptions(store).ServeHTTP(delW2, delR2)

	if delW2.Code != http.StatusNotFound {
		t.Fatalf("second DELETE got status %d, want %d", delW2.Code, http.StatusNotFound)
	}
}

func TestListBlogs(t *testing.T) {
	store := newTestStore(t)

	// Empty listing is an empty array, not null.
	r := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	w := httptest.NewRecorder()

	ListBlogs(store).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var summaries []models.SnapshotSummary
	if err := json.NewDecoder(w.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Errorf("got %v, want empty array", summaries)
	}

	// Ingest two blogs and list again.
	for _, blogID := range []string{"blog-a", "blog-b"} {
		body := `{"blog_title": {"value": "t"}}`
		postR := withBlogID(httptest.NewRequest(http.MethodPost, "/api/blogs/"+blogID+"/options", bytes.NewBufferString(body)), blogID)
		IngestBlogOptions(store, options.Extractor{}).ServeHTTP(httptest.NewRecorder(), postR)
	}

	w2 := httptest.NewRecorder()
	ListBlogs(store).ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))

	if err := json.NewDecoder(w2.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("got %d blogs, want 2", len(summaries))
	}
}
