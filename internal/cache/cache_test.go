package cache_test

import (
	"context"
	"testing"
	"time"

	"maboutique/internal/cache"
	"maboutique/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func testCache(t *testing.T) (*cache.ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.New(rdb, 10*time.Minute), mr
}

func listing() []domain.Product {
	cat := &domain.Category{ID: 2, Name: "Science-Fiction"}
	return []domain.Product{
		{ID: 3, Name: "Dune", Price: decimal.RequireFromString("120.00"), ImageURL: domain.PlaceholderImage, Stock: 5, CategoryID: 2, Category: cat},
		{ID: 4, Name: "Fondation", Price: decimal.RequireFromString("95.50"), ImageURL: domain.PlaceholderImage, Stock: 7, CategoryID: 2, Category: cat},
	}
}

func TestFilterKeys(t *testing.T) {
	if got := cache.Unfiltered().Key(); got != "products:all" {
		t.Fatalf("unfiltered key = %q", got)
	}
	if got := cache.ByCategory(7).Key(); got != "products:category:7" {
		t.Fatalf("category key = %q", got)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	if _, ok := c.Get(ctx, cache.ByCategory(2)); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put(ctx, cache.ByCategory(2), listing())

	got, ok := c.Get(ctx, cache.ByCategory(2))
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got) != 2 || got[0].Name != "Dune" || got[1].Name != "Fondation" {
		t.Fatalf("bad listing: %+v", got)
	}
	if !got[0].Price.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("price drifted: %s", got[0].Price)
	}
	if got[0].Category == nil || got[0].Category.Name != "Science-Fiction" {
		t.Fatalf("category not restored: %+v", got[0].Category)
	}
	// The snapshot breaks the category->products back-edge.
	if len(got[0].Category.Products) != 0 {
		t.Fatal("category back-collection leaked into the cache")
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	c.Put(ctx, cache.Unfiltered(), listing())
	mr.FastForward(10*time.Minute + time.Second)

	if _, ok := c.Get(ctx, cache.Unfiltered()); ok {
		t.Fatal("expired entry served as a hit")
	}
}

func TestInvalidateDropsKeys(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	c.Put(ctx, cache.Unfiltered(), listing())
	c.Put(ctx, cache.ByCategory(2), listing())

	c.Invalidate(ctx, cache.Unfiltered(), cache.ByCategory(2))

	if _, ok := c.Get(ctx, cache.Unfiltered()); ok {
		t.Fatal("unfiltered key survived invalidation")
	}
	if _, ok := c.Get(ctx, cache.ByCategory(2)); ok {
		t.Fatal("category key survived invalidation")
	}
}

func TestUndecodableValueIsAMiss(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	mr.Set(cache.Unfiltered().Key(), "not json at all")

	if _, ok := c.Get(ctx, cache.Unfiltered()); ok {
		t.Fatal("undecodable value served as a hit")
	}
}

// A dead backend must degrade to misses and swallowed writes, never errors.
func TestFailOpenWhenBackendDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(rdb, 10*time.Minute)
	mr.Close()

	ctx := context.Background()
	c.Put(ctx, cache.Unfiltered(), listing())
	if _, ok := c.Get(ctx, cache.Unfiltered()); ok {
		t.Fatal("hit reported while backend is down")
	}
	c.Invalidate(ctx, cache.Unfiltered())
}
