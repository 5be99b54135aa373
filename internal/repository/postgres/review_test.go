package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperleaf/paperleaf/internal/domain"
)

var reviewColumns = []string{
	"id", "book_id", "user_id", "username", "rating", "review_text", "created_at",
}

func sampleReview() domain.Review {
	return domain.Review{
		ID:         "review-1",
		BookID:     "book-1",
		UserID:     "user-1",
		Username:   "reader42",
		Rating:     5,
		ReviewText: "Loved it.",
		CreatedAt:  now,
	}
}

func reviewRow(r domain.Review) []any {
	return []any{r.ID, r.BookID, r.UserID, r.Username, r.Rating, r.ReviewText, r.CreatedAt}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.BookID, rv.UserID, rv.Rating, rv.ReviewText, rv.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_Error(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.BookID, rv.UserID, rv.Rating, rv.ReviewText, rv.CreatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &rv)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByBookID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews r").
		WithArgs(rv.BookID).
		WillReturnRows(pgxmock.NewRows(reviewColumns).AddRow(reviewRow(rv)...))

	reviews, err := repo.ListByBookID(context.Background(), rv.BookID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rv.ID, reviews[0].ID)
	assert.Equal(t, "reader42", reviews[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByBookID_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM reviews r").
		WithArgs("book-1").
		WillReturnRows(pgxmock.NewRows(reviewColumns))

	reviews, err := repo.ListByBookID(context.Background(), "book-1")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Summary_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("book-1").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.333333, 3))

	summary, err := repo.Summary(context.Background(), "book-1")
	require.NoError(t, err)
	assert.InDelta(t, 4.333333, summary.Average, 0.0001)
	assert.Equal(t, 3, summary.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Summary_NoReviews(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	// COALESCE yields a zero average for books without reviews.
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("book-1").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(0.0, 0))

	summary, err := repo.Summary(context.Background(), "book-1")
	require.NoError(t, err)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
