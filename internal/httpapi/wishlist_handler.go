package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type WishlistService interface {
	List(ctx context.Context, sessionID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, sessionID string, item domain.WishlistItem) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, sessionID, productID string) ([]domain.WishlistItem, error)
}

type WishlistHandler struct {
	wishlist WishlistService
	timeout  time.Duration
}

func NewWishlistHandler(wishlist WishlistService, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		timeout:  timeout,
	}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	items, err := h.wishlist.List(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var item domain.WishlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if item.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}

	items, err := h.wishlist.Add(ctx, sessionID, item)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, items)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	items, err := h.wishlist.Remove(ctx, sessionID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}
