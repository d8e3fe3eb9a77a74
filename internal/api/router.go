package api

import (
	"github.com/go-chi/chi/v5"

	"blogopts/internal/api/handlers"
	"blogopts/internal/config"
	"blogopts/internal/options"
	"blogopts/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, ext options.Extractor, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(Recovery)

	r.Route("/api", func(api chi.Router) {
		api.Post("/normalize", handlers.Normalize(ext))

		api.Get("/blogs", handlers.ListBlogs(store))
		api.Post("/blogs/options", handlers.IngestBatch(store, ext, cfg.Options.BatchConcurrency))

		api.Post("/blogs/{blogID}/options", handlers.IngestBlogOptions(store, ext))
		api.Get("/blogs/{blogID}/options", handlers.GetBlogOptions(store))
		api.Delete("/blogs/{blogID}/options", handlers.DeleteBlogOptions(store))
		api.Get("/blogs/{blogID}/defaults", handlers.GetBlogDefaults(store, ext))
	})

	return r
}
