package service

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"market/internal/cache"
	"market/internal/domain"
	"market/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CatalogService serves the product catalog, fronted by an optional cache.
// The catalog never changes after seeding, so cached entries only ever expire.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.ProductCache // nil disables caching
	sfg   singleflight.Group // prevents cache stampede
}

func NewCatalogService(repo repository.CatalogRepository, cache cache.ProductCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.repo.ListProducts(ctx)
	}

	// singleflight collapses concurrent cache misses into one store read
	v, err, _ := s.sfg.Do(cacheGroupKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("catalog cache get failed")
		}

		products, err = s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), products); err != nil {
				logger.Warn().Err(err).Msg("catalog cache set failed")
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

const cacheGroupKey = "catalog:products"
