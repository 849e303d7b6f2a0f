package cart

import (
	"math"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// Cart is the plain value the repository persists and the service mutates.
// All operations key line items by (product id, buy unit).
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) find(productID int, unit BuyUnit) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].BuyUnit == unit {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem merges quantity into an existing (id, unit) line or appends a new
// one built from the product snapshot.
func (c *Cart) AddItem(p *catalog.Product, quantity int, unit BuyUnit) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !validUnits[unit] {
		return ErrInvalidUnit
	}

	if existing := c.find(p.ID, unit); existing != nil {
		existing.Quantity += quantity
		return nil
	}

	c.Items = append(c.Items, NewLineItem(p, quantity, unit))
	return nil
}

// RemoveProduct drops every unit variant of the product. This matches the
// storefront's documented remove contract; see RemoveLine for the narrow form.
func (c *Cart) RemoveProduct(productID int) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// RemoveLine drops exactly one (product id, buy unit) row.
func (c *Cart) RemoveLine(productID int, unit BuyUnit) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].BuyUnit == unit {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) UpdateQuantity(productID int, unit BuyUnit, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item := c.find(productID, unit)
	if item == nil {
		return ErrLineNotFound
	}

	item.Quantity = quantity
	return nil
}

// UpdateUnit moves a line to a different buy unit. If a line with the target
// unit already exists, the quantities merge into it.
func (c *Cart) UpdateUnit(productID int, from, to BuyUnit) error {
	if !validUnits[to] {
		return ErrInvalidUnit
	}

	source := c.find(productID, from)
	if source == nil {
		return ErrLineNotFound
	}
	if from == to {
		return nil
	}

	if target := c.find(productID, to); target != nil {
		target.Quantity += source.Quantity
		return c.RemoveLine(productID, from)
	}

	source.BuyUnit = to
	return nil
}

// Subtotal sums price times quantity over all line items.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return roundCents(total)
}

// Tax is the subtotal at the fixed storefront rate.
func (c *Cart) Tax() float64 {
	return roundCents(c.Subtotal() * TaxRate)
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
