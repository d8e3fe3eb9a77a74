package options

// Options is a flat mapping of option name to normalized value, independent
// of which backend shape produced it.
type Options map[string]Value

// Get looks up an option by name.
func (o Options) Get(name string) (Value, bool) {
	v, ok := o[name]
	return v, ok
}

// MapOptions flattens a raw options response into Options.
//
// Entries wrapped in a legacy descriptor mapping are replaced by the
// descriptor's "value" entry; entries that are already flat scalars (the
// newer settings-endpoint shape) are kept as-is, which also makes the
// function idempotent over its own output. Entries that fit neither shape
// — a descriptor without "value", a non-scalar value, an array, a nil —
// are skipped. A nil response yields an empty map.
func MapOptions(raw map[string]any) Options {
	opts := make(Options, len(raw))
	for name, entry := range raw {
		if desc, ok := entry.(map[string]any); ok {
			inner, ok := desc["value"]
			if !ok {
				continue
			}
			if v, ok := scalar(inner); ok {
				opts[name] = v
			}
			continue
		}

		if v, ok := scalar(entry); ok {
			opts[name] = v
		}
	}
	return opts
}
