package models

import (
	"time"

	"blogopts/internal/options"
)

// OptionsSnapshot is the stored normalized options for a single blog.
// Exactly one snapshot exists per blog ID; ingesting again replaces the
// options in place.
type OptionsSnapshot struct {
	ID        string          `json:"id"`
	BlogID    string          `json:"blog_id"`
	Options   options.Options `json:"options"`
	UpdatedAt time.Time       `json:"updated_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// SnapshotSummary is the listing shape for stored snapshots, without the
// options payload.
type SnapshotSummary struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogDefaults carries the extracted per-blog defaults. Nil fields mean the
// backing option was absent or malformed and the consumer should apply its
// own built-in default.
type BlogDefaults struct {
	DefaultCategoryID *int64  `json:"default_category_id"`
	DefaultPostFormat *string `json:"default_post_format"`
}
