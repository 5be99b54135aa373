package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/pkg/database"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
)

// BookRepository implements repository.BookRepository using PostgreSQL.
type BookRepository struct {
	pool database.DBTX
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool database.DBTX) *BookRepository {
	return &BookRepository{pool: pool}
}

// Create inserts a new book into the database.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, genre, description, added_by, average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.Genre,
		b.Description,
		b.AddedBy,
		b.AverageRating,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := `
		SELECT id, title, author, genre, description, added_by, average_rating, created_at, updated_at
		FROM books
		WHERE id = $1`

	var b domain.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Description,
		&b.AddedBy,
		&b.AverageRating,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("book", id)
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}

	return &b, nil
}

// List returns books matching the filter, newest first, along with the total
// count. Genre matches exactly; author matches case-insensitively anywhere in
// the author name.
func (r *BookRepository) List(ctx context.Context, filter domain.BookFilter, limit, offset int) ([]domain.Book, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argIndex))
		args = append(args, filter.Genre)
		argIndex++
	}

	if filter.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Author+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// The total is counted separately so a page past the end of the result
	// set still reports how many books matched.
	countQuery := fmt.Sprintf(`SELECT count(*) FROM books %s`, whereClause)

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	if totalCount == 0 {
		return []domain.Book{}, 0, nil
	}

	query := fmt.Sprintf(`
		SELECT id, title, author, genre, description, added_by, average_rating, created_at, updated_at
		FROM books
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book

	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Genre,
			&b.Description,
			&b.AddedBy,
			&b.AverageRating,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate book rows: %w", err)
	}

	if books == nil {
		books = []domain.Book{}
	}

	return books, totalCount, nil
}

// SetAverageRating overwrites the denormalized average rating of a book.
func (r *BookRepository) SetAverageRating(ctx context.Context, bookID string, rating float64) error {
	query := `UPDATE books SET average_rating = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, rating, time.Now().UTC(), bookID)
	if err != nil {
		return fmt.Errorf("update average rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("book", bookID)
	}

	return nil
}
