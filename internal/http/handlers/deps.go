package handlers

import (
	"maboutique/internal/cache"
	"maboutique/internal/config"
	"maboutique/internal/repos"
	"maboutique/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	HomeHandler          *HomeHandler
	CartHandler          *CartHandler
	ProductHandler       *ProductHandler
	AdminProductHandler  *AdminProductHandler
	AdminCategoryHandler *AdminCategoryHandler
}

func NewDeps(db *sqlx.DB, rdb *redis.Client, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)

	listingCache := cache.New(rdb, cfg.CacheTTL)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, listingCache)
	reviewSvc := services.NewReviewService(reviewRepo)
	assistantSvc := services.NewAssistantService(services.NewGroqGenerator(cfg.GroqAPIKey))

	return &Deps{
		HomeHandler:          &HomeHandler{Catalog: catalogSvc, Assistant: assistantSvc},
		CartHandler:          &CartHandler{Prods: prodRepo},
		ProductHandler:       &ProductHandler{Catalog: catalogSvc, Reviews: reviewSvc},
		AdminProductHandler:  &AdminProductHandler{Catalog: catalogSvc},
		AdminCategoryHandler: &AdminCategoryHandler{Catalog: catalogSvc},
	}
}
