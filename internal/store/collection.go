package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ideaforge-io/ideaforge/internal/domain"
)

// Collection is a typed view over one named collection of single-valued
// records. Keys are opaque strings; values are stored in the binary record
// encoding. Scans visit entries in the store's native key order, which
// carries no chronological meaning.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a typed collection to the store.
func NewCollection[T any](s *Store, name string) Collection[T] {
	return Collection[T]{store: s, name: name}
}

// Name returns the collection's name.
func (c Collection[T]) Name() string { return c.name }

// Put upserts the value under key. Last write wins.
func (c Collection[T]) Put(ctx context.Context, key string, value *T) error {
	return c.put(ctx, c.store.db, key, value)
}

// PutTx is Put issued inside an atomic unit.
func (c Collection[T]) PutTx(tx *Tx, key string, value *T) error {
	return c.put(tx.ctx, tx.q, key, value)
}

func (c Collection[T]) put(ctx context.Context, q querier, key string, value *T) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO records (collection, k, v) VALUES (?, ?, ?)
		 ON CONFLICT (collection, k) DO UPDATE SET v = excluded.v`,
		c.name, key, b,
	)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", c.name, key, err)
	}
	return nil
}

// Get returns the value stored under key, or domain.ErrNotFound. A missing
// key is an expected miss, never a fault.
func (c Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	return c.get(ctx, c.store.db, key)
}

// GetTx is Get issued inside an atomic unit.
func (c Collection[T]) GetTx(tx *Tx, key string) (*T, error) {
	return c.get(tx.ctx, tx.q, key)
}

func (c Collection[T]) get(ctx context.Context, q querier, key string) (*T, error) {
	var b []byte
	err := q.QueryRowContext(ctx,
		`SELECT v FROM records WHERE collection = ? AND k = ?`,
		c.name, key,
	).Scan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.name, key, err)
	}
	value := new(T)
	if err := decodeValue(b, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Scan visits every entry in native key order. Re-invoking yields a fresh
// snapshot. fn returning an error stops the scan and propagates the error.
// fn must not issue further store operations: the store's single
// connection is held until the scan finishes.
func (c Collection[T]) Scan(ctx context.Context, fn func(key string, value T) error) error {
	rows, err := c.store.db.QueryContext(ctx,
		`SELECT k, v FROM records WHERE collection = ? ORDER BY k`,
		c.name,
	)
	if err != nil {
		return fmt.Errorf("scan %s: %w", c.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var b []byte
		if err := rows.Scan(&key, &b); err != nil {
			return fmt.Errorf("scan %s: %w", c.name, err)
		}
		var value T
		if err := decodeValue(b, &value); err != nil {
			return err
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Remove deletes the entry under key; removing an absent key is a no-op.
func (c Collection[T]) Remove(ctx context.Context, key string) error {
	return c.remove(ctx, c.store.db, key)
}

// RemoveTx is Remove issued inside an atomic unit.
func (c Collection[T]) RemoveTx(tx *Tx, key string) error {
	return c.remove(tx.ctx, tx.q, key)
}

func (c Collection[T]) remove(ctx context.Context, q querier, key string) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND k = ?`,
		c.name, key,
	); err != nil {
		return fmt.Errorf("remove %s/%s: %w", c.name, key, err)
	}
	return nil
}

// Count returns the number of entries in the collection.
func (c Collection[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := c.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE collection = ?`, c.name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}
