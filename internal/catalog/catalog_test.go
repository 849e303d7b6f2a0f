package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

func TestLoad(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cat.All())
}

func TestCatalog_ByID(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	product, err := cat.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, product.ID)
	assert.NotEmpty(t, product.Title)
	assert.GreaterOrEqual(t, product.Price, 0.0)

	_, err = cat.ByID(99999)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestCatalog_Search(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		check func(t *testing.T, results []catalog.Product)
	}{
		{
			name:  "matches_title_case_insensitive",
			query: "sourdough",
			check: func(t *testing.T, results []catalog.Product) {
				require.NotEmpty(t, results)
				assert.Equal(t, "Sourdough Country Loaf", results[0].Title)
			},
		},
		{
			name:  "matches_brand",
			query: "Artisan Baker",
			check: func(t *testing.T, results []catalog.Product) {
				require.NotEmpty(t, results)
				for _, p := range results {
					assert.Equal(t, "Artisan Baker", p.Brand)
				}
			},
		},
		{
			name:  "matches_category",
			query: "bakery",
			check: func(t *testing.T, results []catalog.Product) {
				require.NotEmpty(t, results)
				for _, p := range results {
					assert.Equal(t, "Bakery", p.Category)
				}
			},
		},
		{
			name:  "empty_query_returns_everything",
			query: "  ",
			check: func(t *testing.T, results []catalog.Product) {
				assert.Len(t, results, len(cat.All()))
			},
		},
		{
			name:  "no_match",
			query: "zzzzzz",
			check: func(t *testing.T, results []catalog.Product) {
				assert.Empty(t, results)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cat.Search(tt.query))
		})
	}
}

func TestCatalog_PriceBounds(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	min, max := cat.PriceBounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1000.0, max)
}

func TestCatalog_RatingsWithinRange(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)

	for _, p := range cat.All() {
		assert.GreaterOrEqual(t, p.Rating, 0, "product %d", p.ID)
		assert.LessOrEqual(t, p.Rating, 5, "product %d", p.ID)
		assert.GreaterOrEqual(t, p.DiscountPercentage, 0, "product %d", p.ID)
		assert.LessOrEqual(t, p.DiscountPercentage, 100, "product %d", p.ID)
	}
}
