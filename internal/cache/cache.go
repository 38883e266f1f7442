// Package cache holds the read-through listing cache. Reads and writes are
// fail-open: any backend or decoding failure is logged and reported as a
// miss, and the caller falls back to the catalog store.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"maboutique/internal/domain"
	applog "maboutique/internal/log"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// categorySnapshot carries no product back-collection, which breaks the
// product<->category reference cycle on serialization.
type categorySnapshot struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productSnapshot struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	ImageURL    string           `json:"image_url"`
	Stock       int              `json:"stock"`
	CategoryID  int64            `json:"category_id"`
	Category    categorySnapshot `json:"category"`
}

func snapshot(products []domain.Product) []productSnapshot {
	out := make([]productSnapshot, 0, len(products))
	for _, p := range products {
		s := productSnapshot{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			Stock:       p.Stock,
			CategoryID:  p.CategoryID,
		}
		if p.Category != nil {
			s.Category = categorySnapshot{ID: p.Category.ID, Name: p.Category.Name}
		}
		out = append(out, s)
	}
	return out
}

func restore(snaps []productSnapshot) []domain.Product {
	out := make([]domain.Product, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, domain.Product{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			ImageURL:    s.ImageURL,
			Stock:       s.Stock,
			CategoryID:  s.CategoryID,
			Category:    &domain.Category{ID: s.Category.ID, Name: s.Category.Name},
		})
	}
	return out
}

type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached listing for the filter, or ok=false on a miss.
// A backend error or an undecodable value counts as a miss.
func (c *ListingCache) Get(ctx context.Context, f Filter) ([]domain.Product, bool) {
	raw, err := c.rdb.Get(ctx, f.Key()).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		applog.Warn("cache.get.fail", err, map[string]any{"key": f.Key()})
		return nil, false
	}
	var snaps []productSnapshot
	if err := json.Unmarshal([]byte(raw), &snaps); err != nil {
		applog.Warn("cache.decode.fail", err, map[string]any{"key": f.Key()})
		return nil, false
	}
	return restore(snaps), true
}

// Put stores a fresh snapshot under the filter's key with the configured TTL.
// Errors are swallowed; the next read simply misses.
func (c *ListingCache) Put(ctx context.Context, f Filter, products []domain.Product) {
	raw, err := json.Marshal(snapshot(products))
	if err != nil {
		applog.Warn("cache.encode.fail", err, map[string]any{"key": f.Key()})
		return
	}
	if err := c.rdb.Set(ctx, f.Key(), raw, c.ttl).Err(); err != nil {
		applog.Warn("cache.put.fail", err, map[string]any{"key": f.Key()})
	}
}

// Invalidate drops the keys for the given filters. Best effort.
func (c *ListingCache) Invalidate(ctx context.Context, filters ...Filter) {
	keys := make([]string, 0, len(filters))
	for _, f := range filters {
		keys = append(keys, f.Key())
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		applog.Warn("cache.invalidate.fail", err, map[string]any{"keys": keys})
	}
}
