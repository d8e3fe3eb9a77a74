package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogopts/internal/models"
	"blogopts/internal/options"
)

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but report.
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response {"error": "message"} with the
// given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeBody decodes the request body as JSON into dest.
func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// blogIDParam extracts the blogID URL parameter.
func blogIDParam(r *http.Request) (string, error) {
	blogID := chi.URLParam(r, "blogID")
	if blogID == "" {
		return "", fmt.Errorf("missing blogID URL parameter")
	}
	return blogID, nil
}

// extractDefaults reads the well-known defaults out of normalized options.
// Absent or malformed fields come back as nil, which the settings consumer
// treats as "use the built-in default".
func extractDefaults(ext options.Extractor, opts options.Options) models.BlogDefaults {
	var defaults models.BlogDefaults
	if id, ok := ext.DefaultCategoryID(opts); ok {
		defaults.DefaultCategoryID = &id
	}
	if format, ok := ext.DefaultPostFormat(opts); ok {
		defaults.DefaultPostFormat = &format
	}
	return defaults
}
