package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var _ fiber.Storage = (*SessionStorage)(nil)

// SessionStorage implementa fiber.Storage sobre Redis. Las claves llevan un prefijo para
// convivir con los contadores del rate limit en la misma base.
type SessionStorage struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewSessionStorage construye el almacenamiento. prefix vacío usa "session:".
func NewSessionStorage(client redis.UniversalClient, prefix string) *SessionStorage {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStorage{client: client, prefix: prefix, timeout: 3 * time.Second}
}

func (s *SessionStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get devuelve nil, nil si la clave no existe o expiró.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}
	return val, nil
}

// Set guarda val; exp 0 = sin expiración.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+key, val, exp).Err(); err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

// Delete elimina la clave.
func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

// Reset elimina todas las sesiones del prefijo (no toca otras claves).
func (s *SessionStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis session reset: %w", err)
		}
	}
	return iter.Err()
}

// Close no cierra el cliente: lo comparte el rate limit y lo cierra main.
func (s *SessionStorage) Close() error { return nil }
