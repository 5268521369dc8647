package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/repository/kv"
)

func TestSessionRepository_CreateAndResolve(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	session, err := repo.Create(ctx, "user_1", "tok1", time.Hour)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.UserID != "user_1" || session.Token != "tok1" {
		t.Fatalf("unexpected session: %+v", session)
	}

	userID, err := repo.ResolveToken(ctx, "tok1")
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("expected user_1, got %s", userID)
	}
}

func TestSessionRepository_ResolveUnknownToken(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)

	if _, err := repo.ResolveToken(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_ResolveEmptyToken(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)

	if _, err := repo.ResolveToken(context.Background(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty token, got %v", err)
	}
}

func TestSessionRepository_ZeroTTLIsExpired(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "user_1", "tok1", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.ResolveToken(ctx, "tok1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected immediate expiry, got %v", err)
	}
}

func TestSessionRepository_ExpiryWindow(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "user_1", "tok1", 150*time.Millisecond); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Valid before the deadline.
	if _, err := repo.ResolveToken(ctx, "tok1"); err != nil {
		t.Fatalf("ResolveToken before expiry: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	// Invalid after, and the resolve removes the dead session.
	if _, err := repo.ResolveToken(ctx, "tok1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	n, err := repo.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected resolve to have removed the session already, sweep found %d", n)
	}
}

func TestSessionRepository_Invalidate(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "user_1", "tok1", time.Hour); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Invalidate(ctx, "tok1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := repo.ResolveToken(ctx, "tok1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected token gone, got %v", err)
	}

	// Invalidating an absent token is a no-op.
	if err := repo.Invalidate(ctx, "tok1"); err != nil {
		t.Fatalf("second Invalidate: %v", err)
	}
}

func TestSessionRepository_InvalidateAll(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	for _, tok := range []string{"tok1", "tok2"} {
		if _, err := repo.Create(ctx, "user_1", tok, time.Hour); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, "user_2", "tok3", time.Hour); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.InvalidateAll(ctx, "user_1"); err != nil {
		t.Fatalf("InvalidateAll: %v", err)
	}

	for _, tok := range []string{"tok1", "tok2"} {
		if _, err := repo.ResolveToken(ctx, tok); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected %s gone, got %v", tok, err)
		}
	}
	if _, err := repo.ResolveToken(ctx, "tok3"); err != nil {
		t.Fatalf("expected user_2's session untouched: %v", err)
	}
}

func TestSessionRepository_SweepExpired(t *testing.T) {
	st := newTestStore(t)
	repo := kv.NewSessionRepository(st)
	ctx := context.Background()

	for _, tok := range []string{"dead1", "dead2"} {
		if _, err := repo.Create(ctx, "user_1", tok, 0); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, "user_1", "live", time.Hour); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 sessions swept, got %d", n)
	}

	if _, err := repo.ResolveToken(ctx, "live"); err != nil {
		t.Fatalf("live session should survive the sweep: %v", err)
	}
}
