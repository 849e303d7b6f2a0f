package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries the aggregated per-field failures of a rejected
// submit. It is a normal, recoverable outcome, not an internal fault.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed on %d field(s)", len(e.Fields))
}

type Service interface {
	// Submit validates the full form against its current conditional state
	// and, on success, finalizes the order and clears the cart.
	Submit(ctx context.Context, sessionID string, form *Form) (*order.Order, error)
}

type service struct {
	carts    cart.Service
	orders   order.Repository
	validate *validator.Validate
}

func NewService(carts cart.Service, orders order.Repository) Service {
	return &service{
		carts:    carts,
		orders:   orders,
		validate: NewValidator(),
	}
}

func (s *service) Submit(ctx context.Context, sessionID string, form *Form) (*order.Order, error) {
	if fieldErrors := ValidateForm(s.validate, form); fieldErrors != nil {
		log.Warn().Str("session_id", sessionID).Int("field_errors", len(fieldErrors)).Msg("service: checkout rejected by validation")
		return nil, &ValidationError{Fields: fieldErrors}
	}

	currentCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to load cart for checkout")
		return nil, fmt.Errorf("service: failed to load cart for checkout: %w", err)
	}
	if currentCart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	finalized := s.buildOrder(currentCart, form)

	if err := s.orders.Create(ctx, finalized); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("service: failed to archive order")
		return nil, fmt.Errorf("service: failed to archive order: %w", err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists; a stale cart is recoverable on the next mutation.
		log.Warn().Err(err).Str("session_id", sessionID).Stringer("order_id", finalized.ID).Msg("service: failed to clear cart after checkout")
	}

	log.Info().Stringer("order_id", finalized.ID).Float64("total", finalized.Totals.Total).Msg("service: order finalized")

	return finalized, nil
}

func (s *service) buildOrder(c *cart.Cart, form *Form) *order.Order {
	billingAddress := order.Address{
		Address: form.Billing.Address,
		City:    form.Billing.City,
		Zip:     form.Billing.Zip,
		Country: form.Billing.Country,
	}

	shippingAddress := billingAddress
	if !form.Shipping.SameAsBilling {
		shippingAddress = order.Address{
			Address: form.Shipping.Address,
			City:    form.Shipping.City,
			Zip:     form.Shipping.Zip,
			Country: form.Shipping.Country,
		}
	}

	items := make([]cart.LineItem, len(c.Items))
	copy(items, c.Items)

	return &order.Order{
		Customer: order.Customer{
			FirstName: form.Billing.FirstName,
			LastName:  form.Billing.LastName,
			Email:     form.Billing.Email,
			Phone:     form.Billing.Phone,
		},
		BillingAddress:  billingAddress,
		ShippingAddress: shippingAddress,
		ShippingMethod:  string(form.Shipping.Method),
		PaymentMethod:   string(form.Payment.Method),
		Notes:           form.Additional.Notes,
		Items:           items,
		Totals:          order.ComputeTotals(c, ShippingPrice(form.Shipping.Method)),
	}
}
