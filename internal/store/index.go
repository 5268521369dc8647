package store

import (
	"context"
	"fmt"
)

// Index is a duplicate-capable secondary index mapping one string key to
// any number of string values, stored as raw ordered bytes. The email
// index uses it to map email -> user id.
//
// Put never overwrites prior associations for the key: tolerating
// duplicates means a retried or buggy insertion can never lose data, at
// the cost of readers resolving the first valid match themselves. Entries
// pointing at deleted records (orphans) are likewise tolerated and must be
// filtered at read time.
type Index struct {
	store *Store
	name  string
}

// NewIndex binds a secondary index to the store.
func NewIndex(s *Store, name string) Index {
	return Index{store: s, name: name}
}

// Put adds a (key, value) association, keeping any prior ones.
func (i Index) Put(ctx context.Context, key, value string) error {
	return i.put(ctx, i.store.db, key, value)
}

// PutTx is Put issued inside an atomic unit.
func (i Index) PutTx(tx *Tx, key, value string) error {
	return i.put(tx.ctx, tx.q, key, value)
}

func (i Index) put(ctx context.Context, q querier, key, value string) error {
	if _, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO dup_records (collection, k, v) VALUES (?, ?, ?)`,
		i.name, key, []byte(value),
	); err != nil {
		return fmt.Errorf("index put %s/%s: %w", i.name, key, err)
	}
	return nil
}

// Lookup returns every value associated with key in stored order. A key
// with no associations yields an empty slice, not an error.
func (i Index) Lookup(ctx context.Context, key string) ([]string, error) {
	rows, err := i.store.db.QueryContext(ctx,
		`SELECT v FROM dup_records WHERE collection = ? AND k = ? ORDER BY v`,
		i.name, key,
	)
	if err != nil {
		return nil, fmt.Errorf("index lookup %s/%s: %w", i.name, key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("index lookup %s/%s: %w", i.name, key, err)
		}
		values = append(values, string(b))
	}
	return values, rows.Err()
}

// Remove deletes exactly the one matching association; absent is a no-op.
func (i Index) Remove(ctx context.Context, key, value string) error {
	return i.remove(ctx, i.store.db, key, value)
}

// RemoveTx is Remove issued inside an atomic unit.
func (i Index) RemoveTx(tx *Tx, key, value string) error {
	return i.remove(tx.ctx, tx.q, key, value)
}

func (i Index) remove(ctx context.Context, q querier, key, value string) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM dup_records WHERE collection = ? AND k = ? AND v = ?`,
		i.name, key, []byte(value),
	); err != nil {
		return fmt.Errorf("index remove %s/%s: %w", i.name, key, err)
	}
	return nil
}
