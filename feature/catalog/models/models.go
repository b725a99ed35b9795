package models

import "time"

// NativeBook is a read model over the first-party `books` table.
// The catalog's CRUD surface lives outside this service; the cache core only
// ever looks records up by id to detect identifier collisions.
type NativeBook struct {
	// ID is the raw catalog identifier, without any source prefix.
	ID string `gorm:"column:id;primaryKey" json:"id"`

	// Title is the book title.
	Title string `gorm:"column:title" json:"title"`

	// AuthorName is the publishing user's display name.
	// Native-only field: its presence on a cache row marks a shadow entry.
	AuthorName string `gorm:"column:author_name" json:"authorName"`

	// CoverImage is the stored cover reference.
	// Native-only field, like AuthorName.
	CoverImage string `gorm:"column:cover_image" json:"coverImage"`

	// CreatedAt is when the record was published.
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName returns the table name for GORM.
func (NativeBook) TableName() string {
	return "books"
}
