package order_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

func orderFixture(t *testing.T) *order.Order {
	t.Helper()

	c := &cart.Cart{
		Items: []cart.LineItem{
			{ProductID: 1, Title: "Sourdough Country Loaf", Price: 6.50, Quantity: 2, BuyUnit: cart.UnitPcs},
			{ProductID: 5, Title: "Heirloom Tomatoes", Price: 3.99, Quantity: 3, BuyUnit: cart.UnitKg},
		},
	}

	return &order.Order{
		ID: uuid.Must(uuid.FromString("550e8400-e29b-41d4-a716-446655440000")),
		Customer: order.Customer{
			FirstName: "Anna",
			LastName:  "Petrova",
			Email:     "anna@example.com",
			Phone:     "+491701234567",
		},
		ShippingAddress: order.Address{
			Address: "Lindenstrasse 12",
			City:    "Berlin",
			Zip:     "10115",
			Country: "Germany",
		},
		ShippingMethod: "express",
		PaymentMethod:  "credit-card",
		Items:          c.Items,
		Totals:         order.ComputeTotals(c, 8.50),
	}
}

func TestComputeTotals(t *testing.T) {
	c := &cart.Cart{
		Items: []cart.LineItem{
			{ProductID: 1, Price: 10.00, Quantity: 2, BuyUnit: cart.UnitKg},
		},
	}

	totals := order.ComputeTotals(c, 8.50)

	assert.InDelta(t, 20.00, totals.Subtotal, 0.001)
	assert.InDelta(t, 3.40, totals.Tax, 0.001)
	assert.InDelta(t, 8.50, totals.Shipping, 0.001)
	assert.InDelta(t, totals.Subtotal+totals.Tax+totals.Shipping, totals.Total, 0.001)
}

func TestComputeTotals_EmptyCartShipsFree(t *testing.T) {
	totals := order.ComputeTotals(&cart.Cart{}, 19.99)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.Zero(t, totals.Shipping)
	assert.Zero(t, totals.Total)
}

func TestExportCSV(t *testing.T) {
	o := orderFixture(t)

	payload, err := order.ExportCSV(o)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Order", o.ID.String()}, records[0])
	assert.Equal(t, []string{"Customer", "Anna Petrova"}, records[1])
	assert.Equal(t, []string{"Name", "Quantity", "Unit", "Unit price", "Line total"}, records[5])
	assert.Equal(t, []string{"Sourdough Country Loaf", "2", "pcs", "6.50", "13.00"}, records[6])
	assert.Equal(t, []string{"Heirloom Tomatoes", "3", "kg", "3.99", "11.97"}, records[7])

	last := records[len(records)-1]
	assert.Equal(t, "Total", last[0])
	assert.Equal(t, "37.71", last[4])
}

func TestExportText(t *testing.T) {
	o := orderFixture(t)

	receipt := order.ExportText(o)

	assert.Contains(t, receipt, "Order "+o.ID.String())
	assert.Contains(t, receipt, "Anna Petrova")
	assert.Contains(t, receipt, "anna@example.com")
	assert.Contains(t, receipt, "Sourdough Country Loaf")
	assert.Contains(t, receipt, "kg")
	assert.Contains(t, receipt, "Subtotal")
	assert.Contains(t, receipt, "Shipping")
	assert.Contains(t, receipt, "37.71")

	lines := strings.Split(strings.TrimRight(receipt, "\n"), "\n")
	assert.Equal(t, fmt.Sprintf("%-39s %8s", "Total", "37.71"), lines[len(lines)-1])
}

func TestExportText_TruncatesLongTitleOnRuneBoundary(t *testing.T) {
	o := orderFixture(t)
	o.Items[0].Title = strings.Repeat("ä", 40)

	receipt := order.ExportText(o)

	assert.True(t, utf8.ValidString(receipt))
	assert.Contains(t, receipt, strings.Repeat("ä", 27)+"...")
	assert.NotContains(t, receipt, strings.Repeat("ä", 28))
}

func TestExportPrintHTML(t *testing.T) {
	o := orderFixture(t)

	payload, err := order.ExportPrintHTML(o)
	require.NoError(t, err)

	html := string(payload)
	assert.Contains(t, html, "<title>Order "+o.ID.String()+"</title>")
	assert.Contains(t, html, "Anna Petrova")
	assert.Contains(t, html, "Sourdough Country Loaf")
	assert.Contains(t, html, "37.71")
}
