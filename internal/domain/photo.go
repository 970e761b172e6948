package domain

import "time"

// Buckets holding uploaded objects
const (
	BucketPhotos   = "photos"
	BucketNews     = "news"
	BucketMemories = "memories"
)

// MediaItem is a gallery photo as stored by the backend.
type MediaItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	URL         string    `json:"url"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasTag reports whether the item carries tag.
func (m MediaItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
