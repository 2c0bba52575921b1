package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type OrdersReader interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersBySession(ctx context.Context, sessionID string) ([]*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrdersReader
	timeout time.Duration
}

func NewOrdersHandler(orders OrdersReader, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	list, err := h.orders.ListOrdersBySession(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	order, err := h.orders.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Orders are scoped to the requesting session.
	if order.SessionID != sessionID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
