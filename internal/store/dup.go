package store

import (
	"context"
	"fmt"
)

// DupCollection is a typed view over a duplicate-capable collection: one
// key may hold several distinct values, and associations are removed by
// exact value. Adding an identical (key, value) pair twice stores it once.
// The sessions and data collections use this shape, keyed by user id.
type DupCollection[T any] struct {
	store *Store
	name  string
}

// NewDupCollection binds a typed duplicate-capable collection to the store.
func NewDupCollection[T any](s *Store, name string) DupCollection[T] {
	return DupCollection[T]{store: s, name: name}
}

// Name returns the collection's name.
func (d DupCollection[T]) Name() string { return d.name }

// Add associates value with key without disturbing prior associations.
func (d DupCollection[T]) Add(ctx context.Context, key string, value *T) error {
	return d.add(ctx, d.store.db, key, value)
}

// AddTx is Add issued inside an atomic unit.
func (d DupCollection[T]) AddTx(tx *Tx, key string, value *T) error {
	return d.add(tx.ctx, tx.q, key, value)
}

func (d DupCollection[T]) add(ctx context.Context, q querier, key string, value *T) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT OR IGNORE INTO dup_records (collection, k, v) VALUES (?, ?, ?)`,
		d.name, key, b,
	)
	if err != nil {
		return fmt.Errorf("add %s/%s: %w", d.name, key, err)
	}
	return nil
}

// Values returns every value associated with key, in stored value order.
// A key with no associations yields an empty slice, not an error.
func (d DupCollection[T]) Values(ctx context.Context, key string) ([]T, error) {
	rows, err := d.store.db.QueryContext(ctx,
		`SELECT v FROM dup_records WHERE collection = ? AND k = ? ORDER BY v`,
		d.name, key,
	)
	if err != nil {
		return nil, fmt.Errorf("values %s/%s: %w", d.name, key, err)
	}
	defer rows.Close()

	var values []T
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("values %s/%s: %w", d.name, key, err)
		}
		var value T
		if err := decodeValue(b, &value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// Scan visits every (key, value) association in native order. fn must not
// issue further store operations: the store's single connection is held
// until the scan finishes.
func (d DupCollection[T]) Scan(ctx context.Context, fn func(key string, value T) error) error {
	rows, err := d.store.db.QueryContext(ctx,
		`SELECT k, v FROM dup_records WHERE collection = ? ORDER BY k, v`,
		d.name,
	)
	if err != nil {
		return fmt.Errorf("scan %s: %w", d.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var b []byte
		if err := rows.Scan(&key, &b); err != nil {
			return fmt.Errorf("scan %s: %w", d.name, err)
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

// RemoveValue removes exactly the one matching association; removing an
// absent association is a no-op.
func (d DupCollection[T]) RemoveValue(ctx context.Context, key string, value *T) error {
	return d.removeValue(ctx, d.store.db, key, value)
}

// RemoveValueTx is RemoveValue issued inside an atomic unit.
func (d DupCollection[T]) RemoveValueTx(tx *Tx, key string, value *T) error {
	return d.removeValue(tx.ctx, tx.q, key, value)
}

func (d DupCollection[T]) removeValue(ctx context.Context, q querier, key string, value *T) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx,
		`DELETE FROM dup_records WHERE collection = ? AND k = ? AND v = ?`,
		d.name, key, b,
	); err != nil {
		return fmt.Errorf("remove %s/%s: %w", d.name, key, err)
	}
	return nil
}

// RemoveAll removes every association for key.
func (d DupCollection[T]) RemoveAll(ctx context.Context, key string) error {
	return d.removeAll(ctx, d.store.db, key)
}

// RemoveAllTx is RemoveAll issued inside an atomic unit.
func (d DupCollection[T]) RemoveAllTx(tx *Tx, key string) error {
	return d.removeAll(tx.ctx, tx.q, key)
}

func (d DupCollection[T]) removeAll(ctx context.Context, q querier, key string) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM dup_records WHERE collection = ? AND k = ?`,
		d.name, key,
	); err != nil {
		return fmt.Errorf("remove all %s/%s: %w", d.name, key, err)
	}
	return nil
}

// Count returns the number of associations in the collection.
func (d DupCollection[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := d.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dup_records WHERE collection = ?`, d.name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", d.name, err)
	}
	return n, nil
}
