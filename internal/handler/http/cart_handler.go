package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
)

type AddItemRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	BuyUnit   string `json:"buy_unit" validate:"required"`
}

type UpdateItemRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	BuyUnit   string `json:"buy_unit" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,min=1"`
	NewUnit   string `json:"new_unit,omitempty"`
}

type CartResponse struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
}

type CartHandler struct {
	service  cart.Service
	validate *validator.Validate
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Patch("/cart/items", h.handleUpdateItem)
	router.Delete("/cart/items/{productID}", h.handleRemoveProduct)
	router.Delete("/cart", h.handleClearCart)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	currentCart, err := h.service.Get(r.Context(), session)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load cart via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to load cart")
		return
	}

	respondWithJSON(w, http.StatusOK, toCartResponse(currentCart))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	var requestPayload AddItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "product_id, quantity (>=1) and buy_unit are required")
		return
	}

	unit, err := cart.ParseBuyUnit(requestPayload.BuyUnit)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedCart, err := h.service.AddItem(r.Context(), session, requestPayload.ProductID, requestPayload.Quantity, unit)
	if err != nil {
		log.Error().Err(err).Int("product_id", requestPayload.ProductID).Msg("Failed to add cart item via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to add item to cart")
		return
	}

	respondWithJSON(w, http.StatusOK, toCartResponse(updatedCart))
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	var requestPayload UpdateItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "product_id and buy_unit are required")
		return
	}

	unit, err := cart.ParseBuyUnit(requestPayload.BuyUnit)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var updatedCart *cart.Cart

	switch {
	case requestPayload.NewUnit != "":
		newUnit, err := cart.ParseBuyUnit(requestPayload.NewUnit)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		updatedCart, err = h.service.UpdateUnit(r.Context(), session, requestPayload.ProductID, unit, newUnit)
		if err != nil {
			log.Error().Err(err).Int("product_id", requestPayload.ProductID).Msg("Failed to update cart item unit via service")
			respondWithError(w, mapErrorToStatusCode(err), "Failed to update cart item")
			return
		}
	case requestPayload.Quantity != nil:
		updatedCart, err = h.service.UpdateQuantity(r.Context(), session, requestPayload.ProductID, unit, *requestPayload.Quantity)
		if err != nil {
			log.Error().Err(err).Int("product_id", requestPayload.ProductID).Msg("Failed to update cart item quantity via service")
			respondWithError(w, mapErrorToStatusCode(err), "Failed to update cart item")
			return
		}
	default:
		respondWithError(w, http.StatusBadRequest, "Either quantity or new_unit must be provided")
		return
	}

	respondWithJSON(w, http.StatusOK, toCartResponse(updatedCart))
}

// handleRemoveProduct removes every unit variant of the product, which is the
// storefront's documented remove contract.
func (h *CartHandler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	idParam := chi.URLParam(r, "productID")
	productID, err := strconv.Atoi(idParam)
	if err != nil {
		log.Warn().Str("product_id", idParam).Msg("Failed to parse product id parameter")
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	updatedCart, err := h.service.RemoveProduct(r.Context(), session, productID)
	if err != nil {
		log.Error().Err(err).Int("product_id", productID).Msg("Failed to remove cart item via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to remove item from cart")
		return
	}

	respondWithJSON(w, http.StatusOK, toCartResponse(updatedCart))
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	if err := h.service.Clear(r.Context(), session); err != nil {
		log.Error().Err(err).Msg("Failed to clear cart via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCartResponse(c *cart.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return CartResponse{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		Tax:       c.Tax(),
	}
}
