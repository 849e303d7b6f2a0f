package cart

import (
	"errors"
	"fmt"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// TaxRate is the storefront's single fixed tax rate.
const TaxRate = 0.17

// BuyUnit is the unit of sale selected for a product.
type BuyUnit string

const (
	UnitPcs  BuyUnit = "pcs"
	UnitKg   BuyUnit = "kg"
	UnitLb   BuyUnit = "lb"
	UnitBox  BuyUnit = "box"
	UnitPack BuyUnit = "pack"
)

func (u BuyUnit) String() string {
	return string(u)
}

var validUnits = map[BuyUnit]bool{
	UnitPcs:  true,
	UnitKg:   true,
	UnitLb:   true,
	UnitBox:  true,
	UnitPack: true,
}

var (
	ErrInvalidUnit     = errors.New("invalid buy unit")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("cart line item not found")
)

// ParseBuyUnit validates a unit coming from the outside.
func ParseBuyUnit(s string) (BuyUnit, error) {
	unit := BuyUnit(s)
	if !validUnits[unit] {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return unit, nil
}

// LineItem is one (product id, buy unit) row in the cart. Price is a snapshot
// taken at add time; catalog price changes do not retroactively reprice a cart.
type LineItem struct {
	ProductID     int      `json:"product_id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	BuyUnit       BuyUnit  `json:"buy_unit"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Farm          string   `json:"farm,omitempty"`
	Freshness     string   `json:"freshness,omitempty"`
	Rating        int      `json:"rating,omitempty"`
}

func (li LineItem) LineTotal() float64 {
	return li.Price * float64(li.Quantity)
}

// NewLineItem snapshots a catalog product into a cart row.
func NewLineItem(p *catalog.Product, quantity int, unit BuyUnit) LineItem {
	return LineItem{
		ProductID:     p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Quantity:      quantity,
		BuyUnit:       unit,
		OriginalPrice: p.OriginalPrice,
		Farm:          p.Farm,
		Freshness:     p.Freshness,
		Rating:        p.Rating,
	}
}
