package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кэш поверх Redis. Промах возвращает
// apperrors.ErrNotFound.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
