package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paperleaf/paperleaf/internal/domain"
)

const keyPrefix = "book:detail:"

// BookDetailCache implements repository.BookDetailCache using Redis.
type BookDetailCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookDetailCache creates a new Redis-backed book detail cache.
func NewBookDetailCache(client *redis.Client, ttl time.Duration) *BookDetailCache {
	return &BookDetailCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached detail for a book. A cache miss returns nil, nil.
func (c *BookDetailCache) Get(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	data, err := c.client.Get(ctx, keyPrefix+bookID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get book detail: %w", err)
	}

	var detail domain.BookDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("unmarshal book detail: %w", err)
	}

	return &detail, nil
}

// Set stores the detail for a book with the configured TTL.
func (c *BookDetailCache) Set(ctx context.Context, bookID string, detail *domain.BookDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal book detail: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+bookID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set book detail: %w", err)
	}

	return nil
}

// Invalidate drops the cached detail for a book.
func (c *BookDetailCache) Invalidate(ctx context.Context, bookID string) error {
	if err := c.client.Del(ctx, keyPrefix+bookID).Err(); err != nil {
		return fmt.Errorf("redis del book detail: %w", err)
	}

	return nil
}
