package port

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается Get, если ключа нет, он истек или не декодируется
var ErrCacheMiss = errors.New("cache miss")

// Cache общий кеш сырых наборов данных между репликами dashboard.
// Значения сериализуются в JSON.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error

	// Set сохраняет значение; ttl <= 0 означает TTL по умолчанию реализации
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// DeletePattern удаляет все ключи, подходящие под glob шаблон
	DeletePattern(ctx context.Context, pattern string) error

	Close() error
}
