package repository

import (
	"context"

	"github.com/paperleaf/paperleaf/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BookRepository defines the interface for book persistence operations.
type BookRepository interface {
	// Create inserts a new book into the store.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// List returns books matching the filter, newest first, with the total count.
	List(ctx context.Context, filter domain.BookFilter, limit, offset int) ([]domain.Book, int, error)

	// SetAverageRating overwrites the denormalized average rating of a book.
	SetAverageRating(ctx context.Context, bookID string, rating float64) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByBookID returns every review for a book, newest first, with the
	// reviewer's username joined in.
	ListByBookID(ctx context.Context, bookID string) ([]*domain.Review, error)

	// Summary returns the aggregate rating over all reviews for a book.
	Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error)
}

// BookDetailCache caches assembled book detail views.
type BookDetailCache interface {
	// Get returns the cached detail for a book, or nil on a miss.
	Get(ctx context.Context, bookID string) (*domain.BookDetail, error)

	// Set stores the detail for a book.
	Set(ctx context.Context, bookID string, detail *domain.BookDetail) error

	// Invalidate drops the cached detail for a book.
	Invalidate(ctx context.Context, bookID string) error
}
