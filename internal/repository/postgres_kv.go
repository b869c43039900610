package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/marketcart/internal/db"
	"github.com/nikolayk812/marketcart/internal/port"
)

type postgresKV struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

// NewPostgresKV stores blobs in the kv_entries table.
func NewPostgresKV(pool *pgxpool.Pool) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresKVWithTx(tx pgx.Tx) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := r.q.GetValue(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetValue: %w", err)
	}

	return value, true, nil
}

// Set overwrites the value under key. Writers of the same key are
// serialized with a transaction-scoped advisory lock.
func (r *postgresKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.LockKey(ctx, key); err != nil {
			return struct{}{}, fmt.Errorf("q.LockKey: %w", err)
		}

		if err := q.SetValue(ctx, db.SetValueParams{Key: key, Value: value}); err != nil {
			return struct{}{}, fmt.Errorf("q.SetValue: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}
