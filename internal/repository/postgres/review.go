package postgres

import (
	"context"
	"fmt"

	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, rating, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Rating,
		review.ReviewText,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByBookID returns every review for a book, newest first, with the
// reviewer's username joined in.
func (r *ReviewRepository) ListByBookID(ctx context.Context, bookID string) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.book_id, r.user_id, u.username, r.rating, r.review_text, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.BookID,
			&rv.UserID,
			&rv.Username,
			&rv.Rating,
			&rv.ReviewText,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []*domain.Review{}
	}

	return reviews, nil
}

// Summary returns the aggregate rating over all reviews for a book. A book
// with no reviews yields an average of zero.
func (r *ReviewRepository) Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE book_id = $1`

	var summary domain.RatingSummary
	err := r.pool.QueryRow(ctx, query, bookID).Scan(
		&summary.Average,
		&summary.Count,
	)
	if err != nil {
		return nil, fmt.Errorf("get rating summary: %w", err)
	}

	return &summary, nil
}
