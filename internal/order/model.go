package order

import (
	"math"
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/storefront/internal/cart"
)

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Order is the immutable snapshot taken at the moment checkout succeeds:
// customer identity, addresses, the cart's line items and the computed totals.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	Customer        Customer        `json:"customer"`
	BillingAddress  Address         `json:"billing_address"`
	ShippingAddress Address         `json:"shipping_address"`
	ShippingMethod  string          `json:"shipping_method"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	Items           []cart.LineItem `json:"items"`
	Totals          Totals          `json:"totals"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ComputeTotals derives order totals from the cart's own subtotal and tax
// functions so the summary can never drift from the cart. Shipping is zero
// for an empty cart regardless of the selected method.
func ComputeTotals(c *cart.Cart, shippingPrice float64) Totals {
	if c.IsEmpty() {
		shippingPrice = 0
	}

	subtotal := c.Subtotal()
	tax := c.Tax()

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shippingPrice,
		Total:    math.Round((subtotal+tax+shippingPrice)*100) / 100,
	}
}
