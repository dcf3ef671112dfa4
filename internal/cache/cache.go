package cache

import (
	"context"
	"errors"

	"market/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
}

var ErrCacheMiss = errors.New("cache miss")
