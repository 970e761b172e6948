package domain

import "time"

type NewsItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url"`
	ImagePath   string    `json:"image_path"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	DateEnd   time.Time `json:"date_end"`
	CreatedAt time.Time `json:"created_at"`
}
