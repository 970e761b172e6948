package domain

import "time"

type MemoryPhoto struct {
	URL         string `json:"url"`
	StoragePath string `json:"path"`
}

// MemoryItem is a titled, dated collection of photos.
type MemoryItem struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	ShortDescription string        `json:"short_desc"`
	EventDate        *time.Time    `json:"event_date,omitempty"`
	Order            int           `json:"order"`
	Visible          bool          `json:"visible"`
	Photos           []MemoryPhoto `json:"photos"`
	CreatedAt        time.Time     `json:"created_at"`
}

// PhotoURLs returns the memory's photo urls in display order.
func (m MemoryItem) PhotoURLs() []string {
	urls := make([]string, 0, len(m.Photos))
	for _, p := range m.Photos {
		urls = append(urls, p.URL)
	}
	return urls
}
