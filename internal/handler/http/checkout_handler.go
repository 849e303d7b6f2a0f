package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

type CheckoutHandler struct {
	checkoutService checkout.Service
	orders          order.Repository
}

func NewCheckoutHandler(checkoutService checkout.Service, orders order.Repository) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orders:          orders,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleSubmit)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.Get("/orders/{id}/export", h.handleExportOrder)
	router.Get("/orders/{id}/print", h.handlePrintOrder)
}

func (h *CheckoutHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if session == "" {
		respondWithError(w, http.StatusBadRequest, "X-Session-Id header is required")
		return
	}

	var form checkout.Form

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		log.Error().Err(err).Msg("Failed to decode checkout form")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	finalized, err := h.checkoutService.Submit(r.Context(), session, &form)
	if err != nil {
		var validationErr *checkout.ValidationError
		if errors.As(err, &validationErr) {
			respondWithJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: validationErr.Fields,
			})
			return
		}

		log.Error().Err(err).Msg("Failed to submit checkout via service")

		var clientMessage string
		if errors.Is(err, checkout.ErrEmptyCart) {
			clientMessage = "Cart is empty"
		} else {
			clientMessage = "Failed to complete checkout"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, finalized)
}

func (h *CheckoutHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	found, ok := h.fetchOrder(w, r)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *CheckoutHandler) handleExportOrder(w http.ResponseWriter, r *http.Request) {
	found, ok := h.fetchOrder(w, r)
	if !ok {
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		payload, err := order.ExportCSV(found)
		if err != nil {
			log.Error().Err(err).Stringer("order_id", found.ID).Msg("Failed to export order as CSV")
			respondWithError(w, http.StatusInternalServerError, "Failed to export order")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="order-`+found.ID.String()+`.csv"`)
		_, _ = w.Write(payload)
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(order.ExportText(found)))
	default:
		respondWithError(w, http.StatusBadRequest, "Unsupported export format: "+format)
	}
}

func (h *CheckoutHandler) handlePrintOrder(w http.ResponseWriter, r *http.Request) {
	found, ok := h.fetchOrder(w, r)
	if !ok {
		return
	}

	payload, err := order.ExportPrintHTML(found)
	if err != nil {
		log.Error().Err(err).Stringer("order_id", found.ID).Msg("Failed to render order print view")
		respondWithError(w, http.StatusInternalServerError, "Failed to render print view")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(payload)
}

func (h *CheckoutHandler) fetchOrder(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.FromString(idParam)
	if err != nil {
		log.Warn().Err(err).Str("order_id", idParam).Msg("Failed to parse order id parameter")
		respondWithError(w, http.StatusBadRequest, "Invalid order id")
		return nil, false
	}

	found, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return nil, false
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("Failed to get order via repository")
		respondWithError(w, http.StatusInternalServerError, "Failed to get order")
		return nil, false
	}

	return found, true
}
