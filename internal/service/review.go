package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/internal/repository"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
)

// ReviewService implements the business logic for reviews and the
// denormalized book rating.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	cache      repository.BookDetailCache
	producer   EventPublisher
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookRepo repository.BookRepository,
	cache repository.BookDetailCache,
	producer EventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		cache:      cache,
		producer:   producer,
		logger:     logger,
	}
}

// AddReviewInput holds the parameters for posting a review.
type AddReviewInput struct {
	BookID     string
	UserID     string
	Rating     int
	ReviewText string
}

// AddReview records a review for an existing book and synchronously
// recomputes the book's average rating from the full review history. The
// recompute is best effort: a failure there leaves the review in place and
// is logged rather than returned.
func (s *ReviewService) AddReview(ctx context.Context, input AddReviewInput) (*domain.Review, error) {
	if input.BookID == "" {
		return nil, apperrors.InvalidInput("book id is required")
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if input.ReviewText == "" {
		return nil, apperrors.InvalidInput("review text is required")
	}

	book, err := s.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		BookID:     book.ID,
		UserID:     input.UserID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	average := s.recomputeRating(ctx, book.ID)

	if err := s.cache.Invalidate(ctx, book.ID); err != nil {
		s.logger.WarnContext(ctx, "book detail cache invalidation failed",
			slog.String("book_id", book.ID),
			slog.String("error", err.Error()),
		)
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewCreated(ctx, review, average); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review added",
		slog.String("review_id", review.ID),
		slog.String("book_id", book.ID),
		slog.String("user_id", review.UserID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// recomputeRating recalculates a book's average rating over every stored
// review, rounded to two decimals, and persists it. Failures are logged and
// the previous stored value stays in place until the next review.
func (s *ReviewService) recomputeRating(ctx context.Context, bookID string) float64 {
	summary, err := s.reviewRepo.Summary(ctx, bookID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to recompute book rating",
			slog.String("book_id", bookID),
			slog.String("error", err.Error()),
		)
		return 0
	}

	average := math.Round(summary.Average*100) / 100

	if err := s.bookRepo.SetAverageRating(ctx, bookID, average); err != nil {
		s.logger.ErrorContext(ctx, "failed to store book rating",
			slog.String("book_id", bookID),
			slog.Float64("average", average),
			slog.String("error", err.Error()),
		)
		return average
	}

	return average
}
