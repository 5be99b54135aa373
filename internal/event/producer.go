package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paperleaf/paperleaf/internal/domain"
	pkgkafka "github.com/paperleaf/paperleaf/pkg/kafka"
)

// Kafka topics for Paperleaf domain events.
const (
	TopicUserRegistered = "paperleaf.user.registered"
	TopicBookAdded      = "paperleaf.book.added"
	TopicReviewCreated  = "paperleaf.review.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser = "user"
	AggregateTypeBook = "book"
)

// Source identifier for events originating from this process.
const Source = "paperleaf-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// BookAddedData is the payload for a book.added event.
type BookAddedData struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Genre   string `json:"genre"`
	AddedBy string `json:"added_by"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID            string  `json:"id"`
	BookID        string  `json:"book_id"`
	UserID        string  `json:"user_id"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
}

// Publisher is the subset of the Kafka producer the event layer needs.
// Satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes Paperleaf domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// PublishBookAdded publishes a book.added event.
func (p *Producer) PublishBookAdded(ctx context.Context, book *domain.Book) error {
	data := BookAddedData{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		Genre:   book.Genre,
		AddedBy: book.AddedBy,
	}

	event, err := pkgkafka.NewEvent(TopicBookAdded, book.ID, AggregateTypeBook, Source, data)
	if err != nil {
		return fmt.Errorf("create book.added event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookAdded, event); err != nil {
		return fmt.Errorf("publish book.added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published book.added event",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event keyed by book so
// consumers see a book's reviews in order.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review, averageRating float64) error {
	data := ReviewCreatedData{
		ID:            review.ID,
		BookID:        review.BookID,
		UserID:        review.UserID,
		Rating:        review.Rating,
		AverageRating: averageRating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.BookID, AggregateTypeBook, Source, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
	)

	return nil
}
