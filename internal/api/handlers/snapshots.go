package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"blogopts/internal/models"
	"blogopts/internal/options"
	"blogopts/internal/storage"
)

// snapshotResponse is the reply shape for ingest and read endpoints.
type snapshotResponse struct {
	Snapshot *models.OptionsSnapshot `json:"snapshot"`
	Defaults models.BlogDefaults     `json:"defaults"`
}

// IngestBlogOptions handles POST /api/blogs/{blogID}/options. The body is a
// raw options response; it is normalized and stored as the blog's current
// snapshot, replacing any previous one.
func IngestBlogOptions(store *storage.Store, ext options.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		blogID, err := blogIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var raw map[string]any
		if err := decodeBody(r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		opts := options.MapOptions(raw)

		snap, err := store.UpsertSnapshot(ctx, blogID, opts)
		if err != nil {
			slog.Error("failed to store snapshot", "blog_id", blogID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to store options")
			return
		}

		writeJSON(w, http.StatusOK, snapshotResponse{
			Snapshot: snap,
			Defaults: extractDefaults(ext, snap.Options),
		})
	}
}

// GetBlogOptions handles GET /api/blogs/{blogID}/options. It returns the
// stored snapshot for the blog.
func GetBlogOptions(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		blogID, err := blogIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		snap, err := store.GetSnapshot(ctx, blogID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "No options stored for blog")
				return
			}
			slog.Error("failed to get snapshot", "blog_id", blogID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get options")
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}

// GetBlogDefaults handles GET /api/blogs/{blogID}/defaults. It extracts the
// default category ID and post format from the blog's stored snapshot.
func GetBlogDefaults(store *storage.Store, ext options.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		blogID, err := blogIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		snap, err := store.GetSnapshot(ctx, blogID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "No options stored for blog")
				return
			}
			slog.Error("failed to get snapshot", "blog_id", blogID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get options")
			return
		}

		writeJSON(w, http.StatusOK, extractDefaults(ext, snap.Options))
	}
}

// DeleteBlogOptions handles DELETE /api/blogs/{blogID}/options.
func DeleteBlogOptions(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		blogID, err := blogIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.DeleteSnapshot(ctx, blogID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "No options stored for blog")
				return
			}
			slog.Error("failed to delete snapshot", "blog_id", blogID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete options")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ListBlogs handles GET /api/blogs. It lists all blogs with stored
// snapshots, most recently updated first.
func ListBlogs(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		summaries, err := store.ListSnapshots(ctx)
		if err != nil {
			slog.Error("failed to list snapshots", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list blogs")
			return
		}
		if summaries == nil {
			summaries = []models.SnapshotSummary{}
		}

		writeJSON(w, http.StatusOK, summaries)
	}
}
