package services

import (
	"context"
	"database/sql"
	"errors"

	"maboutique/internal/cache"
	"maboutique/internal/domain"
	"maboutique/internal/repos"
)

// ErrNotFound is returned when a product or category id does not resolve.
var ErrNotFound = errors.New("not found")

// CatalogService fronts the catalog store with the listing cache. Reads go
// cache-first; every successful product mutation synchronously invalidates
// the unfiltered key and the affected category key(s) before returning.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Cache *cache.ListingCache
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, lc *cache.ListingCache) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Cache: lc}
}

// ListCategories always reads the store: the category list is small and
// changes rarely, so it is not worth a cache entry.
func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// Listing serves the product listing for a filter. On a hit the store is not
// touched; on a miss the fresh rows are fetched, cached inline with a new
// TTL (best effort), and returned.
func (s *CatalogService) Listing(ctx context.Context, f cache.Filter) ([]domain.Product, error) {
	if products, ok := s.Cache.Get(ctx, f); ok {
		return products, nil
	}

	var (
		products []domain.Product
		err      error
	)
	if catID, ok := f.Category(); ok {
		products, err = s.Prods.ListByCategory(catID)
	} else {
		products, err = s.Prods.List()
	}
	if err != nil {
		return nil, err
	}

	s.Cache.Put(ctx, f, products)
	return products, nil
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (s *CatalogService) GetCategory(id int64) (domain.Category, error) {
	c, err := s.Cats.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, ErrNotFound
	}
	return c, err
}

// CreateProduct inserts the product and invalidates the listings it appears
// in, so the very next read repopulates with the new row.
func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.Prods.Insert(p); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cache.Unfiltered(), cache.ByCategory(p.CategoryID))
	return nil
}

// UpdateProduct rewrites the row and invalidates the unfiltered key plus the
// product's category key. When the edit moved the product to another
// category, the prior category's key is invalidated as well; leaving it to
// expire on TTL would serve a stale listing for up to ten minutes.
func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) error {
	prior, err := s.Prods.Get(p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.Prods.Update(p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Raced a concurrent delete.
			return ErrNotFound
		}
		return err
	}

	filters := []cache.Filter{cache.Unfiltered(), cache.ByCategory(p.CategoryID)}
	if prior.CategoryID != p.CategoryID {
		filters = append(filters, cache.ByCategory(prior.CategoryID))
	}
	s.Cache.Invalidate(ctx, filters...)
	return nil
}

// DeleteProduct removes the row and invalidates using the product's category
// at time of deletion.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := s.Prods.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.Cache.Invalidate(ctx, cache.Unfiltered(), cache.ByCategory(p.CategoryID))
	return nil
}

func (s *CatalogService) CreateCategory(c *domain.Category) error {
	return s.Cats.Insert(c)
}

// DeleteCategory cascades to the category's products at the store level, so
// both the category key and the unfiltered key go stale and are invalidated.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.Cats.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.Cache.Invalidate(ctx, cache.Unfiltered(), cache.ByCategory(id))
	return nil
}
