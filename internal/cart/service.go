package cart

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// Service funnels every cart mutation through a load-mutate-persist cycle so
// the repository always holds the full current line-item list.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, productID, quantity int, unit BuyUnit) (*Cart, error)
	RemoveProduct(ctx context.Context, sessionID string, productID int) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int, unit BuyUnit, quantity int) (*Cart, error)
	UpdateUnit(ctx context.Context, sessionID string, productID int, from, to BuyUnit) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	repo    Repository
	catalog *catalog.Catalog
}

func NewService(repo Repository, cat *catalog.Catalog) Service {
	return &service{repo: repo, catalog: cat}
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.repo.Load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, productID, quantity int, unit BuyUnit) (*Cart, error) {
	product, err := s.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.AddItem(product, quantity, unit)
	})
}

func (s *service) RemoveProduct(ctx context.Context, sessionID string, productID int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.RemoveProduct(productID)
		return nil
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int, unit BuyUnit, quantity int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.UpdateQuantity(productID, unit, quantity)
	})
}

func (s *service) UpdateUnit(ctx context.Context, sessionID string, productID int, from, to BuyUnit) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.UpdateUnit(productID, from, to)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to clear cart")
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

func (s *service) mutate(ctx context.Context, sessionID string, apply func(*Cart) error) (*Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to load cart")
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	if err := apply(cart); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to persist cart")
		return nil, fmt.Errorf("service: failed to persist cart: %w", err)
	}

	return cart, nil
}
