package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"blogopts/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied.
// It registers a cleanup function to close the database when the test
// completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// withBlogID attaches a chi route context carrying the blogID URL parameter.
func withBlogID(r *http.Request, blogID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("blogID", blogID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
