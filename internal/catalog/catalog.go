package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed data/products.json
var dataFS embed.FS

var ErrProductNotFound = errors.New("product not found")

// Default bounds of the price facet when no filter is applied.
const (
	DefaultPriceMin = 0.0
	DefaultPriceMax = 1000.0
)

// Catalog holds the static product list in memory and answers lookups.
type Catalog struct {
	products []Product
	byID     map[int]*Product
}

// Load parses the embedded dataset. A malformed dataset is a build defect,
// so the error is returned for the caller to treat as fatal.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/products.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read embedded dataset: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse dataset: %w", err)
	}

	byID := make(map[int]*Product, len(products))
	for i := range products {
		p := &products[i]
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %d in dataset", p.ID)
		}
		byID[p.ID] = p
	}

	log.Info().Int("products", len(products)).Msg("Catalog loaded")

	return &Catalog{products: products, byID: byID}, nil
}

// All returns every product in dataset order. Callers must not mutate
// the returned slice.
func (c *Catalog) All() []Product {
	return c.products
}

func (c *Catalog) ByID(id int) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Search matches query as a case-insensitive substring of title, brand or
// category. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.products
	}

	var matched []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Brand), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// PriceBounds returns the catalog-wide price facet bounds.
func (c *Catalog) PriceBounds() (min, max float64) {
	return DefaultPriceMin, DefaultPriceMax
}
