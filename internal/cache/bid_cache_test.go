package cache

import (
	"context"
	"testing"
	"time"

	"github.com/movebid/moving-auction-service/internal/auction"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
)

func newTestCache(t *testing.T) *BidSummaryCache {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewBidSummaryCache(mr.Addr(), "", 0, 30*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBidSummaryCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	lowest := decimal.RequireFromString("300")
	highest := decimal.RequireFromString("500")
	summary := auction.Summary{Count: 3, LowestPrice: &lowest, HighestPrice: &highest}

	if err := c.Set(ctx, "ann-1", summary); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, hit, err := c.Get(ctx, "ann-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Count != 3 {
		t.Fatalf("count = %d, want 3", got.Count)
	}
	if !got.LowestPrice.Equal(lowest) {
		t.Fatalf("lowest = %s, want 300", got.LowestPrice)
	}
	if !got.HighestPrice.Equal(highest) {
		t.Fatalf("highest = %s, want 500", got.HighestPrice)
	}
}

func TestBidSummaryCache_MissIsNotAnError(t *testing.T) {
	c := newTestCache(t)

	got, hit, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit || got != nil {
		t.Fatal("expected a clean miss")
	}
}

func TestBidSummaryCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "ann-1", auction.Summary{Count: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "ann-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	_, hit, err := c.Get(ctx, "ann-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected miss after invalidation")
	}
}

func TestBidSummaryCache_NoBidsSentinelSurvivesEncoding(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "empty", auction.Summary{}); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, hit, err := c.Get(ctx, "empty")
	if err != nil || !hit {
		t.Fatalf("get: hit=%v err=%v", hit, err)
	}
	if got.Count != 0 || got.LowestPrice != nil || got.HighestPrice != nil {
		t.Fatalf("no-bids sentinel mangled: %+v", got)
	}
}
