package domain

import "time"

// Message is one post on the confess board.
type Message struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
