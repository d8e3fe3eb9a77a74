package handlers

import (
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"blogopts/internal/models"
	"blogopts/internal/options"
	"blogopts/internal/storage"
)

// failedBlog records a blog whose options could not be stored.
type failedBlog struct {
	BlogID string `json:"blog_id"`
	Error  string `json:"error"`
}

// batchEntry mirrors the single-ingest reply for one blog in a batch.
type batchEntry struct {
	Snapshot *models.OptionsSnapshot `json:"snapshot"`
	Defaults models.BlogDefaults     `json:"defaults"`
}

// batchResponse collects the per-blog outcomes of a batch ingest. Individual
// failures do not fail the batch.
type batchResponse struct {
	Snapshots []batchEntry `json:"snapshots"`
	Failed    []failedBlog `json:"failed"`
}

// IngestBatch handles POST /api/blogs/options. The body maps blog ID to a
// raw options response; each is normalized and stored with bounded
// concurrency. SQLite serializes the writes, but normalization of large
// batches proceeds in parallel.
func IngestBatch(store *storage.Store, ext options.Extractor, concurrency int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body map[string]map[string]any
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if len(body) == 0 {
			writeError(w, http.StatusBadRequest, "Empty batch")
			return
		}

		var (
			result batchResponse
			mu     sync.Mutex
		)

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		for blogID, raw := range body {
			blogID, raw := blogID, raw
			g.Go(func() error {
				opts := options.MapOptions(raw)

				snap, err := store.UpsertSnapshot(ctx, blogID, opts)
				if err != nil {
					mu.Lock()
					result.Failed = append(result.Failed, failedBlog{
						BlogID: blogID,
						Error:  err.Error(),
					})
					mu.Unlock()
					return nil // collect failures, don't fail the batch
				}

				mu.Lock()
				result.Snapshots = append(result.Snapshots, batchEntry{
					Snapshot: snap,
					Defaults: extractDefaults(ext, snap.Options),
				})
				mu.Unlock()
				return nil
			})
		}

		// Workers never return errors; Wait only flushes the group.
		_ = g.Wait()

		// Map iteration order is random; sort by blog ID.
		sort.Slice(result.Snapshots, func(i, j int) bool {
			return result.Snapshots[i].Snapshot.BlogID < result.Snapshots[j].Snapshot.BlogID
		})
		sort.Slice(result.Failed, func(i, j int) bool {
			return result.Failed[i].BlogID < result.Failed[j].BlogID
		})
		if result.Snapshots == nil {
			result.Snapshots = []batchEntry{}
		}
		if result.Failed == nil {
			result.Failed = []failedBlog{}
		}

		writeJSON(w, http.StatusOK, result)
	}
}
