package domain

import "time"

// Review is a single rating-plus-text entry for a book. Username is the
// reviewer's name, joined in when reviews are listed.
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary is the aggregate over a book's reviews.
type RatingSummary struct {
	Average float64
	Count   int
}
