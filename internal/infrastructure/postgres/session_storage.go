package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ fiber.Storage = (*SessionStorage)(nil)

// SessionStorage implementa fiber.Storage sobre la tabla pos_sessions.
// e es el vencimiento en segundos Unix (0 = sin vencimiento).
type SessionStorage struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewSessionStorage construye el almacenamiento y arranca la limpieza periódica de sesiones
// vencidas cada gcInterval (0 = sin limpieza).
func NewSessionStorage(pool *pgxpool.Pool, gcInterval time.Duration) *SessionStorage {
	s := &SessionStorage{pool: pool, timeout: 3 * time.Second, stop: make(chan struct{})}
	if gcInterval > 0 {
		go s.gc(gcInterval)
	}
	return s
}

// Get devuelve nil, nil si la clave no existe o venció.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var (
		val []byte
		exp int64
	)
	err := s.pool.QueryRow(ctx, `SELECT v, e FROM pos_sessions WHERE k = $1`, key).Scan(&val, &exp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres session get: %w", err)
	}
	if exp != 0 && exp <= time.Now().Unix() {
		return nil, nil
	}
	return val, nil
}

// Set inserta o reemplaza la sesión.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	var expUnix int64
	if exp > 0 {
		expUnix = time.Now().Add(exp).Unix()
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pos_sessions (k, v, e) VALUES ($1, $2, $3)
		ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, e = EXCLUDED.e`, key, val, expUnix)
	if err != nil {
		return fmt.Errorf("postgres session set: %w", err)
	}
	return nil
}

// Delete elimina la sesión.
func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `DELETE FROM pos_sessions WHERE k = $1`, key); err != nil {
		return fmt.Errorf("postgres session delete: %w", err)
	}
	return nil
}

// Reset elimina todas las sesiones.
func (s *SessionStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `DELETE FROM pos_sessions`); err != nil {
		return fmt.Errorf("postgres session reset: %w", err)
	}
	return nil
}

// Close detiene la limpieza. El pool lo cierra main.
func (s *SessionStorage) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *SessionStorage) gc(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			_, _ = s.pool.Exec(ctx, `DELETE FROM pos_sessions WHERE e > 0 AND e <= $1`, time.Now().Unix())
			cancel()
		}
	}
}
