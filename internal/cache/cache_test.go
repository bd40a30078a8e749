package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestPresenceTracking(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	if err := c.MarkConnected(ctx, "sess-1"); err != nil {
		t.Fatalf("mark connected failed: %v", err)
	}
	if err := c.MarkConnected(ctx, "sess-2"); err != nil {
		t.Fatalf("mark connected failed: %v", err)
	}

	active, err := c.ActiveSessions(ctx)
	if err != nil {
		t.Fatalf("active sessions failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active sessions, got %d", len(active))
	}

	if err := c.MarkDisconnected(ctx, "sess-1"); err != nil {
		t.Fatalf("mark disconnected failed: %v", err)
	}
	active, err = c.ActiveSessions(ctx)
	if err != nil {
		t.Fatalf("active sessions failed: %v", err)
	}
	if len(active) != 1 || active[0] != "sess-2" {
		t.Fatalf("unexpected active set: %v", active)
	}
}

func TestDailyMessageCounter(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := c.BumpDailyMessages(ctx, day); err != nil {
			t.Fatalf("bump failed: %v", err)
		}
	}

	n, err := c.DailyMessages(ctx, day)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}

	// Unbumped day reads zero, not an error
	other, err := c.DailyMessages(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if other != 0 {
		t.Fatalf("expected 0, got %d", other)
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if err := c.MarkConnected(ctx, "s"); err != nil {
		t.Fatalf("nil cache must be a no-op: %v", err)
	}
	if err := c.BumpDailyMessages(ctx, time.Now()); err != nil {
		t.Fatalf("nil cache must be a no-op: %v", err)
	}
	if n, err := c.DailyMessages(ctx, time.Now()); err != nil || n != 0 {
		t.Fatalf("nil cache must read zero: %d %v", n, err)
	}
	if _, err := c.ActiveSessions(ctx); err != nil {
		t.Fatalf("nil cache must be a no-op: %v", err)
	}
}
