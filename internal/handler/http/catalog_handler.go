package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/filter"
)

const defaultPerPage = 12

type ProductListResponse struct {
	Products          []catalog.Product   `json:"products"`
	Total             int                 `json:"total"`
	Page              int                 `json:"page"`
	PerPage           int                 `json:"per_page"`
	SubcategoryFacets []filter.Facet      `json:"subcategory_facets"`
	BrandFacets       []filter.BrandFacet `json:"brand_facets"`
}

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
}

// handleListProducts serves the storefront listing: optional free-text search,
// facet filters, and pagination. The response carries the facet lists derived
// from the same product subset the listing was computed over.
func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	state, err := parseFilterState(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Search mode derives facets from the search subset rather than the
	// full catalog.
	search := query.Get("search")
	base := h.catalog.All()
	if search != "" {
		base = h.catalog.Search(search)
	}

	// Facet counts describe the active category's subset (or the search
	// subset), not the whole catalog.
	facetBase := filter.ByCategory(base, state.ActiveCategory)

	filtered := filter.Apply(base, state)

	page := parseIntDefault(query.Get("page"), 1)
	perPage := parseIntDefault(query.Get("per_page"), defaultPerPage)

	response := ProductListResponse{
		Products:          filter.Paginate(filtered, page, perPage),
		Total:             len(filtered),
		Page:              page,
		PerPage:           perPage,
		SubcategoryFacets: filter.SubcategoryFacets(facetBase),
		BrandFacets:       filter.BrandFacets(facetBase, state.ActiveSubcategory, state.SelectedBrands),
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		log.Warn().Str("product_id", idParam).Msg("Failed to parse product id parameter")
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.catalog.ByID(id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func parseFilterState(r *http.Request) (*filter.State, error) {
	query := r.URL.Query()
	state := filter.NewState()

	if category := query.Get("category"); category != "" && category != "all" {
		state.ActiveCategory = category
	}
	state.ActiveSubcategory = query.Get("subcategory")

	for _, brand := range query["brand"] {
		state.SelectedBrands[brand] = true
	}

	for _, raw := range query["rating"] {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 0 || rating > 5 {
			return nil, errInvalidParam("rating", raw)
		}
		state.SelectedRatings[rating] = true
	}

	if raw := query.Get("price_min"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errInvalidParam("price_min", raw)
		}
		state.PriceMin = min
	}
	if raw := query.Get("price_max"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errInvalidParam("price_max", raw)
		}
		state.PriceMax = max
	}

	return state, nil
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "Invalid " + e.name + " parameter: " + e.value
}

func errInvalidParam(name, value string) error {
	return &paramError{name: name, value: value}
}
