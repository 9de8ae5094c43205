package cache

import (
	"context"
	"testing"
	"time"
)

func TestWeeklyPickKey(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"midweek", time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC), "weeklypick:2024-10"},
		{"same week later day", time.Date(2024, time.March, 8, 23, 0, 0, 0, time.UTC), "weeklypick:2024-10"},
		{"next monday rolls over", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), "weeklypick:2024-11"},
		{"iso year boundary", time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), "weeklypick:2025-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyPickKey(tt.at); got != tt.want {
				t.Fatalf("WeeklyPickKey(%s) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	now := time.Now()

	if payload, ok := c.GetWeeklyPick(ctx, now); ok || payload != nil {
		t.Fatalf("nil cache should miss, got %q", payload)
	}
	// Must not panic.
	c.SetWeeklyPick(ctx, now, []byte(`{}`))
	c.InvalidateWeeklyPick(ctx, now)
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache Close: %v", err)
	}
}

func TestNewDisabledWhenURLEmpty(t *testing.T) {
	c, err := New(context.Background(), "")
	if err != nil {
		t.Fatalf("New with empty URL: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil cache when REDIS_URL is unset")
	}
}
