package domain

import "time"

// Book represents a catalog entry. AddedBy is the user who added the book to
// the catalog. AverageRating is the denormalized mean of all review ratings,
// recomputed whenever a review is added.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description,omitempty"`
	AddedBy       string    `json:"added_by"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookFilter narrows a catalog listing. Zero values mean "no filter".
type BookFilter struct {
	Genre  string // exact match
	Author string // case-insensitive substring match
}

// BookDetail is a book together with its full review history.
type BookDetail struct {
	Book    *Book     `json:"book"`
	Reviews []*Review `json:"reviews"`
}
