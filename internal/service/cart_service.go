package service

import (
	"context"

	"market/internal/domain"
	"market/internal/repository"
)

const checkoutMessage = "Purchase completed"

// CartService owns the cart entry lifecycle. The cart is process-wide: one
// shared ledger, no per-user partitioning.
type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
	}
}

// Add accumulates qty onto the product's entry. Validation happens before any
// write: a rejected add leaves the ledger untouched.
func (s *CartService) Add(ctx context.Context, productID int64, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.AddItem(ctx, productID, qty); err != nil {
		logger.Error().Err(err).Int64("product_id", productID).Msg("cart add failed")
		return domain.Cart{}, err
	}

	return s.View(ctx)
}

// View returns the current cart joined with catalog data. An empty ledger is
// a well-formed cart with no items and a zero total.
func (s *CartService) View(ctx context.Context) (domain.Cart, error) {
	items, err := s.repo.CartItems(ctx)
	if err != nil {
		return domain.Cart{}, err
	}

	return domain.Cart{
		Items: items,
		Total: repository.SumItems(items),
	}, nil
}

// Checkout finalizes the purchase: the repository computes the total and
// empties the ledger in one transaction. An empty cart checks out to zero.
func (s *CartService) Checkout(ctx context.Context) (domain.CheckoutResult, error) {
	total, err := s.repo.Checkout(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("checkout failed")
		return domain.CheckoutResult{}, err
	}

	logger.Info().Float64("total", total).Msg("checkout completed")
	return domain.CheckoutResult{
		Total:   total,
		Message: checkoutMessage,
	}, nil
}

// Clear empties the ledger without computing a total.
func (s *CartService) Clear(ctx context.Context) error {
	return s.repo.ClearCart(ctx)
}
