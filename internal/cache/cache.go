// Package cache provides the response cache for the remote data access
// layer. Entries are keyed by (tag, key); a mutation on a resource
// invalidates its whole tag, so the next read refetches from the backend.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tags mirror the backend resources.
const (
	TagEvents         = "events"
	TagVenues         = "venues"
	TagTicketTypes    = "ticketTypes"
	TagBookings       = "bookings"
	TagPayments       = "payments"
	TagMedia          = "media"
	TagSupportTickets = "supportTickets"
)

type TagCache interface {
	Get(ctx context.Context, tag, key string, out any) (bool, error)
	Set(ctx context.Context, tag, key string, value any, ttl time.Duration) error
	InvalidateTag(ctx context.Context, tag string) error
}

type redisCache struct {
	cli *redis.Client
}

func NewRedisCache(cli *redis.Client) TagCache {
	return &redisCache{cli: cli}
}

func entryKey(tag, key string) string {
	return "cache:" + tag + ":" + key
}

func tagSetKey(tag string) string {
	return "cachetag:" + tag
}

func (c *redisCache) Get(ctx context.Context, tag, key string, out any) (bool, error) {
	raw, err := c.cli.Get(ctx, entryKey(tag, key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, tag, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	ek := entryKey(tag, key)
	pipe := c.cli.TxPipeline()
	pipe.Set(ctx, ek, raw, ttl)
	pipe.SAdd(ctx, tagSetKey(tag), ek)
	// Keep the membership set alive at least as long as its entries.
	pipe.Expire(ctx, tagSetKey(tag), ttl*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *redisCache) InvalidateTag(ctx context.Context, tag string) error {
	sk := tagSetKey(tag)
	members, err := c.cli.SMembers(ctx, sk).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	if len(members) == 0 {
		return nil
	}
	pipe := c.cli.TxPipeline()
	pipe.Del(ctx, members...)
	pipe.Del(ctx, sk)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
