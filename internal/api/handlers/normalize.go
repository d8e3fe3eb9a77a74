package handlers

import (
	"net/http"

	"blogopts/internal/models"
	"blogopts/internal/options"
)

// normalizeResponse is the reply shape for the stateless normalize endpoint.
type normalizeResponse struct {
	Options  options.Options     `json:"options"`
	Defaults models.BlogDefaults `json:"defaults"`
}

// Normalize handles POST /api/normalize. The body is a raw options response
// in either backend shape (legacy RPC descriptors or the flat settings
// shape); the reply carries the flattened options and the extracted
// defaults. Nothing is persisted.
func Normalize(ext options.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := decodeBody(r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		opts := options.MapOptions(raw)

		writeJSON(w, http.StatusOK, normalizeResponse{
			Options:  opts,
			Defaults: extractDefaults(ext, opts),
		})
	}
}
