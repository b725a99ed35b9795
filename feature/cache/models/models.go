package models

import "time"

// Classification is the derived category of a cache entry. It is computed
// on demand and never persisted.
type Classification string

const (
	// ValidExternal is a well-formed copy of an external catalog record.
	ValidExternal Classification = "valid_external"
	// NativeShadow is an entry that carries native catalog traits: an id
	// without the external prefix, or native-only fields.
	NativeShadow Classification = "native_shadow"
	// Suspicious is an entry that matches neither schema cleanly.
	Suspicious Classification = "suspicious"
)

// CacheEntry is a locally stored copy of an external catalog record.
// The id follows the convention "<source-prefix><sourceId>", e.g. "ext-42".
type CacheEntry struct {
	ID            string `gorm:"column:id;primaryKey" json:"id"`
	Title         string `gorm:"column:title" json:"title"`
	Author        string `gorm:"column:author" json:"author,omitempty"`
	CoverURL      string `gorm:"column:cover_url" json:"coverUrl,omitempty"`
	Description   string `gorm:"column:description" json:"description,omitempty"`
	Genre         string `gorm:"column:genre" json:"genre,omitempty"`
	DownloadCount int    `gorm:"column:download_count;default:0" json:"downloadCount"`

	// AuthorName and CoverImage are native-only fields. A healthy external
	// entry never carries them; their presence marks the row as a shadow of
	// a native record (typically left behind by an older import).
	AuthorName string `gorm:"column:author_name" json:"authorName,omitempty"`
	CoverImage string `gorm:"column:cover_image" json:"coverImage,omitempty"`

	// CachedAt is refreshed on every overwrite.
	CachedAt time.Time `gorm:"column:cached_at" json:"cachedAt"`
}

// TableName returns the table name for GORM.
func (CacheEntry) TableName() string {
	return "cache_entries"
}

// SourceRecord is a raw record consumed by a cache rebuild. It mirrors the
// CacheEntry fields minus the cache timestamp, which the store assigns.
type SourceRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	Description   string `json:"description,omitempty"`
	Genre         string `json:"genre,omitempty"`
	DownloadCount int    `json:"downloadCount"`
}

// Entry converts the source record into a cache entry.
func (r SourceRecord) Entry() CacheEntry {
	return CacheEntry{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		CoverURL:      r.CoverURL,
		Description:   r.Description,
		Genre:         r.Genre,
		DownloadCount: r.DownloadCount,
	}
}

// ClassificationDetail is one row of the stats detail list.
type ClassificationDetail struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Classification Classification `json:"classification"`
}

// Stats aggregates the classification of every entry in the cache at the
// instant of the listing. Computed, never persisted.
type Stats struct {
	Total         int                    `json:"total"`
	ValidExternal int                    `json:"valid_external"`
	NativeShadow  int                    `json:"native_shadow"`
	Suspicious    int                    `json:"suspicious"`
	Details       []ClassificationDetail `json:"details"`
}

// BulkResult is the aggregated outcome of a maintenance bulk operation.
// Failures are counted, never silently folded into successes.
type BulkResult struct {
	// Succeeded is the number of confirmed per-item operations.
	Succeeded int `json:"succeeded"`
	// Skipped counts records rejected by the shape check before any write.
	Skipped int `json:"skipped"`
	// Failed counts per-item operations the backing store rejected.
	Failed int `json:"failed"`
}
