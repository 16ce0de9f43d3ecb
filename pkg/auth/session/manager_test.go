package session

import (
	"context"
	"testing"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
)

func newTestManager(t *testing.T, now *time.Time) *Manager {
	t.Helper()
	manager, err := NewManager(config.SessionConfig{TTL: time.Hour, SweepInterval: time.Minute})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager.WithClock(func() time.Time { return *now })
}

func TestManagerBeginAndExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now)

	ctx := context.Background()
	if err := manager.Begin("sess-1", "user-1"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	ok, err := manager.HasSession(ctx, "sess-1")
	if err != nil || !ok {
		t.Fatalf("expected live session, ok=%v err=%v", ok, err)
	}

	now = now.Add(2 * time.Hour)
	ok, err = manager.HasSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected session to expire after ttl")
	}
}

func TestManagerRevoke(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now)

	ctx := context.Background()
	if err := manager.Begin("sess-1", ""); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := manager.Revoke(ctx, "sess-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := manager.HasSession(ctx, "sess-1"); ok {
		t.Fatalf("revoked session should be gone")
	}
}

func TestVisitorFavoritesToggleAndExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now)

	added, err := manager.ToggleFavorite("visitor-1", "prod-1")
	if err != nil || !added {
		t.Fatalf("first toggle should add, added=%v err=%v", added, err)
	}
	if fav, _ := manager.IsFavorite("visitor-1", "prod-1"); !fav {
		t.Fatalf("expected favorite after toggle")
	}

	added, err = manager.ToggleFavorite("visitor-1", "prod-1")
	if err != nil || added {
		t.Fatalf("second toggle should remove, added=%v err=%v", added, err)
	}

	manager.ToggleFavorite("visitor-1", "prod-2")
	ids, err := manager.Favorites("visitor-1")
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(ids) != 1 || ids[0] != "prod-2" {
		t.Fatalf("unexpected favorites %v", ids)
	}

	// Expired visitor sessions lose their favorites entirely.
	now = now.Add(2 * time.Hour)
	ids, err = manager.Favorites("visitor-1")
	if err != nil {
		t.Fatalf("favorites after expiry: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty favorites after expiry, got %v", ids)
	}
}

func TestMarkSeenDeduplicates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now)

	first, err := manager.MarkSeen("sess-1", "view_product:p1")
	if err != nil || !first {
		t.Fatalf("first mark should report true, got %v err=%v", first, err)
	}
	again, err := manager.MarkSeen("sess-1", "view_product:p1")
	if err != nil || again {
		t.Fatalf("second mark should report false, got %v err=%v", again, err)
	}
	other, err := manager.MarkSeen("sess-2", "view_product:p1")
	if err != nil || !other {
		t.Fatalf("different session should dedupe independently")
	}
}

func TestSweepDropsExpiredSessions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now)

	manager.Begin("a", "")
	manager.Begin("b", "")

	now = now.Add(2 * time.Hour)
	manager.Begin("c", "")

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if _, ok := manager.sessions["a"]; ok {
		t.Fatalf("expected session a to be swept")
	}
	if _, ok := manager.sessions["c"]; !ok {
		t.Fatalf("expected session c to survive")
	}
}
