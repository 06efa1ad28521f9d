package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/movebid/moving-auction-service/internal/auction"

	"github.com/redis/go-redis/v9"
)

// BidSummaryCache caches per-announcement bid summaries in Redis. The TTL
// matches the external countdown polling interval, so a stale entry can
// survive at most one poll cycle; writes invalidate eagerly anyway.
type BidSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBidSummaryCache connects to Redis and verifies the connection.
func NewBidSummaryCache(addr, password string, db int, ttl time.Duration) (*BidSummaryCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BidSummaryCache{client: rdb, ttl: ttl}, nil
}

func summaryKey(announcementID string) string {
	return fmt.Sprintf("announcement:%s:bid_summary", announcementID)
}

// Get returns the cached summary and whether it was present.
func (c *BidSummaryCache) Get(ctx context.Context, announcementID string) (*auction.Summary, bool, error) {
	data, err := c.client.Get(ctx, summaryKey(announcementID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get bid summary cache: %w", err)
	}

	var summary auction.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false, fmt.Errorf("get bid summary cache: decode: %w", err)
	}
	return &summary, true, nil
}

// Set stores the summary with the cache TTL.
func (c *BidSummaryCache) Set(ctx context.Context, announcementID string, summary auction.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("set bid summary cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(announcementID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set bid summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary so the next read reflects the latest
// bid set immediately.
func (c *BidSummaryCache) Invalidate(ctx context.Context, announcementID string) error {
	if err := c.client.Del(ctx, summaryKey(announcementID)).Err(); err != nil {
		return fmt.Errorf("invalidate bid summary cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *BidSummaryCache) Close() error {
	return c.client.Close()
}
