package options

// Option names used by both the legacy RPC options listing and the newer
// settings endpoint. Kept here as the single source of truth; deployments
// facing a backend with renamed keys override them via NewExtractor.
const (
	DefaultCategoryKey   = "default_category"
	DefaultPostFormatKey = "default_post_format"
)

// Extractor reads the well-known default fields out of normalized options.
// The zero Extractor uses the standard key names.
type Extractor struct {
	categoryKey   string
	postFormatKey string
}

// NewExtractor returns an Extractor with custom key names. Empty arguments
// fall back to the standard keys.
func NewExtractor(categoryKey, postFormatKey string) Extractor {
	return Extractor{categoryKey: categoryKey, postFormatKey: postFormatKey}
}

// DefaultCategoryID returns the blog's default category ID. The value is
// accepted both as a native number and as a string-encoded number, since
// legacy RPC responses use the latter. Returns (0, false) when the option
// is absent or not numeric; the caller falls back to its own default.
func (e Extractor) DefaultCategoryID(opts Options) (int64, bool) {
	v, ok := opts.Get(e.key(e.categoryKey, DefaultCategoryKey))
	if !ok {
		return 0, false
	}
	return v.Int64()
}

// DefaultPostFormat returns the blog's default post format keyword. An
// empty value is treated as unset.
func (e Extractor) DefaultPostFormat(opts Options) (string, bool) {
	v, ok := opts.Get(e.key(e.postFormatKey, DefaultPostFormatKey))
	if !ok {
		return "", false
	}
	format := v.Text()
	if format == "" {
		return "", false
	}
	return format, true
}

func (e Extractor) key(custom, standard string) string {
	if custom != "" {
		return custom
	}
	return standard
}

// DefaultCategoryID extracts the default category ID using the standard key.
func DefaultCategoryID(opts Options) (int64, bool) {
	return Extractor{}.DefaultCategoryID(opts)
}

// DefaultPostFormat extracts the default post format using the standard key.
func DefaultPostFormat(opts Options) (string, bool) {
	return Extractor{}.DefaultPostFormat(opts)
}
