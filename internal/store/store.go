// Package store implements an ordered, namespaced key-value store on top
// of an embedded SQLite database. Records live in named collections keyed
// by opaque string ids; duplicate-capable collections and indexes allow
// multiple values per key. Multi-key writes run as atomic units through
// RunAtomic.
//
// The store assumes a single logical writer: it opens one connection, so
// the engine serializes all durable writes. Readers may call concurrently
// from multiple goroutines.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Collection names for the persisted layout. All collections share one
// database environment and its lifecycle.
const (
	CollectionUsers      = "users"
	CollectionSessions   = "sessions"
	CollectionData       = "data"
	CollectionEmailIndex = "email_index"
	CollectionIdeas      = "ideas"
	CollectionProjects   = "projects"
	CollectionFunding    = "funding"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	k TEXT NOT NULL,
	v BLOB NOT NULL,
	PRIMARY KEY (collection, k)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS dup_records (
	collection TEXT NOT NULL,
	k TEXT NOT NULL,
	v BLOB NOT NULL,
	PRIMARY KEY (collection, k, v)
) WITHOUT ROWID;
`

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Collections run their statements against one of the two, which is how
// the same operation works standalone or inside an atomic unit.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the process-wide storage handle: opened once at startup,
// closed once at shutdown, and passed explicitly to every repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store environment at the given
// path and applies the schema. It enables WAL mode and restricts the pool
// to a single connection so writes are serialized by construction.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// One connection: the store is a single-writer engine.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx is a handle for issuing reads and writes inside one atomic unit.
type Tx struct {
	ctx context.Context
	q   *sql.Tx
}

// Context returns the context the atomic unit was started with.
func (tx *Tx) Context() context.Context { return tx.ctx }

// RunAtomic executes fn inside a single transaction. Every mutation issued
// through the Tx commits as one unit when fn returns nil; if fn returns an
// error (or panics), nothing becomes visible.
func (s *Store) RunAtomic(ctx context.Context, fn func(tx *Tx) error) error {
	sqltx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin atomic unit: %w", err)
	}
	defer sqltx.Rollback()

	if err := fn(&Tx{ctx: ctx, q: sqltx}); err != nil {
		return err
	}

	if err := sqltx.Commit(); err != nil {
		return fmt.Errorf("commit atomic unit: %w", err)
	}
	return nil
}
