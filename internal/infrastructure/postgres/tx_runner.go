package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// inTx ejecuta fn dentro de una transacción y hace Commit o Rollback.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pos_sessions (
		k  TEXT PRIMARY KEY,
		v  BYTEA NOT NULL,
		e  BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS pos_sessions_e_idx ON pos_sessions (e) WHERE e > 0`,
	`CREATE TABLE IF NOT EXISTS pos_bill_journal (
		bill_id      INTEGER PRIMARY KEY,
		user_id      INTEGER NOT NULL DEFAULT 0,
		customer_id  INTEGER NOT NULL DEFAULT 0,
		lines        INTEGER NOT NULL,
		total        NUMERIC(14,2) NOT NULL,
		recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS pos_bill_journal_recorded_idx ON pos_bill_journal (recorded_at)`,
}

// EnsureSchema crea las tablas propias si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return inTx(ctx, pool, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema: %w", err)
			}
		}
		return nil
	})
}
