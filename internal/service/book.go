package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paperleaf/paperleaf/internal/domain"
	"github.com/paperleaf/paperleaf/internal/repository"
	apperrors "github.com/paperleaf/paperleaf/pkg/errors"
	"github.com/paperleaf/paperleaf/pkg/pagination"
)

// BookService implements the business logic for the book catalog.
type BookService struct {
	bookRepo   repository.BookRepository
	reviewRepo repository.ReviewRepository
	cache      repository.BookDetailCache
	producer   EventPublisher
	logger     *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
	cache repository.BookDetailCache,
	producer EventPublisher,
	logger *slog.Logger,
) *BookService {
	return &BookService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		cache:      cache,
		producer:   producer,
		logger:     logger,
	}
}

// AddBookInput holds the parameters for adding a book to the catalog.
// AddedBy is the authenticated user recording the book.
type AddBookInput struct {
	Title       string
	Author      string
	Genre       string
	Description string
	AddedBy     string
}

// BookListResult is a single page of the catalog.
type BookListResult struct {
	Books       []domain.Book
	TotalPages  int
	CurrentPage int
}

// AddBook adds a new book to the catalog with a zero average rating.
func (s *BookService) AddBook(ctx context.Context, input AddBookInput) (*domain.Book, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Author == "" {
		return nil, apperrors.InvalidInput("author is required")
	}
	if input.Genre == "" {
		return nil, apperrors.InvalidInput("genre is required")
	}
	if input.AddedBy == "" {
		return nil, apperrors.InvalidInput("added by user id is required")
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Description: input.Description,
		AddedBy:     input.AddedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	// Publish catalog event (non-blocking on failure).
	if err := s.producer.PublishBookAdded(ctx, book); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish book.added event",
			slog.String("book_id", book.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "book added",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)

	return book, nil
}

// ListBooks returns one page of the catalog filtered by genre and author.
func (s *BookService) ListBooks(ctx context.Context, filter domain.BookFilter, page pagination.Params) (*BookListResult, error) {
	books, total, err := s.bookRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return &BookListResult{
		Books:       books,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
	}, nil
}

// GetBookDetail returns a book with its full review history, serving from
// the cache when possible.
func (s *BookService) GetBookDetail(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	if cached, err := s.cache.Get(ctx, bookID); err != nil {
		s.logger.WarnContext(ctx, "book detail cache read failed",
			slog.String("book_id", bookID),
			slog.String("error", err.Error()),
		)
	} else if cached != nil {
		return cached, nil
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	reviews, err := s.reviewRepo.ListByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	detail := &domain.BookDetail{
		Book:    book,
		Reviews: reviews,
	}

	if err := s.cache.Set(ctx, bookID, detail); err != nil {
		s.logger.WarnContext(ctx, "book detail cache write failed",
			slog.String("book_id", bookID),
			slog.String("error", err.Error()),
		)
	}

	return detail, nil
}
