package domain

import "time"

// FileInfo describes one stored object.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// BucketUsage summarises one bucket for the storage monitor.
type BucketUsage struct {
	Bucket     string `json:"bucket"`
	Files      int    `json:"files"`
	TotalBytes int64  `json:"total_bytes"`
	Human      string `json:"human"`
}

// DashboardCounts holds row counts per table.
type DashboardCounts struct {
	Photos   int64 `json:"photos"`
	News     int64 `json:"news"`
	Events   int64 `json:"events"`
	Memories int64 `json:"memories"`
	Messages int64 `json:"messages"`
}
