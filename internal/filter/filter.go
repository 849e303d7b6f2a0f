package filter

import (
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// State is the single owner of every active facet selection. Derived facet
// lists are computed on read, so resetting needs no notification fan-out.
type State struct {
	ActiveCategory    string
	ActiveSubcategory string
	SelectedBrands    map[string]bool
	SelectedRatings   map[int]bool
	PriceMin          float64
	PriceMax          float64
}

func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset clears brand and rating selections and restores the price range to
// the catalog-wide default bounds. Category selection is left as is.
func (s *State) Reset() {
	s.SelectedBrands = make(map[string]bool)
	s.SelectedRatings = make(map[int]bool)
	s.PriceMin = catalog.DefaultPriceMin
	s.PriceMax = catalog.DefaultPriceMax
}

// Facet is one derived filter option with its product count.
type Facet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BrandFacet additionally carries whether the brand is currently selected.
type BrandFacet struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// SubcategoryFacets groups products by subcategory in first-seen order.
// The caller passes either the active category's products or the current
// search results.
func SubcategoryFacets(products []catalog.Product) []Facet {
	counts := make(map[string]int)
	var order []string

	for _, p := range products {
		if p.Subcategory == "" {
			continue
		}
		if _, seen := counts[p.Subcategory]; !seen {
			order = append(order, p.Subcategory)
		}
		counts[p.Subcategory]++
	}

	facets := make([]Facet, 0, len(order))
	for _, name := range order {
		facets = append(facets, Facet{Name: name, Count: counts[name]})
	}
	return facets
}

// BrandFacets groups products by brand, restricted to the active subcategory
// when one is set, and marks selection via membership in selectedBrands.
func BrandFacets(products []catalog.Product, activeSubcategory string, selectedBrands map[string]bool) []BrandFacet {
	counts := make(map[string]int)
	var order []string

	for _, p := range products {
		if activeSubcategory != "" && p.Subcategory != activeSubcategory {
			continue
		}
		if p.Brand == "" {
			continue
		}
		if _, seen := counts[p.Brand]; !seen {
			order = append(order, p.Brand)
		}
		counts[p.Brand]++
	}

	facets := make([]BrandFacet, 0, len(order))
	for _, name := range order {
		facets = append(facets, BrandFacet{
			Name:     name,
			Count:    counts[name],
			Selected: selectedBrands[name],
		})
	}
	return facets
}

// ByCategory narrows products to one category. An empty category keeps the
// full list.
func ByCategory(products []catalog.Product, category string) []catalog.Product {
	if category == "" {
		return products
	}
	narrowed := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			narrowed = append(narrowed, p)
		}
	}
	return narrowed
}

// Apply returns the products passing every active predicate. Empty facets
// match everything; a rating selection passes when the product rating meets
// any selected minimum threshold; the price range is inclusive.
func Apply(products []catalog.Product, s *State) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if s.ActiveCategory != "" && p.Category != s.ActiveCategory {
			continue
		}
		if s.ActiveSubcategory != "" && p.Subcategory != s.ActiveSubcategory {
			continue
		}
		if len(s.SelectedBrands) > 0 && !s.SelectedBrands[p.Brand] {
			continue
		}
		if len(s.SelectedRatings) > 0 && !meetsAnyRating(p.Rating, s.SelectedRatings) {
			continue
		}
		if p.Price < s.PriceMin || p.Price > s.PriceMax {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func meetsAnyRating(rating int, thresholds map[int]bool) bool {
	for threshold := range thresholds {
		if rating >= threshold {
			return true
		}
	}
	return false
}

// Paginate slices products for a 1-based page. Out-of-range pages yield an
// empty slice; perPage below 1 falls back to the full list.
func Paginate(products []catalog.Product, page, perPage int) []catalog.Product {
	if perPage < 1 {
		return products
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(products) {
		return []catalog.Product{}
	}

	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
