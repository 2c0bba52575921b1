package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type AddressService interface {
	List(ctx context.Context, sessionID string) ([]domain.Address, error)
	Add(ctx context.Context, sessionID string, addr domain.Address) (*domain.Address, error)
	Update(ctx context.Context, sessionID string, addr domain.Address) error
	Delete(ctx context.Context, sessionID, id string) error
	SetDefault(ctx context.Context, sessionID, id string) error
	Default(ctx context.Context, sessionID string) (*domain.Address, error)
}

type AddressHandler struct {
	addresses AddressService
	timeout   time.Duration
}

func NewAddressHandler(addresses AddressService, timeout time.Duration) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
		timeout:   timeout,
	}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	addrs, err := h.addresses.List(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if addrs == nil {
		addrs = []domain.Address{}
	}

	respondJSON(w, http.StatusOK, addrs)
}

func (h *AddressHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.addresses.Add(ctx, sessionID, addr)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	id := chi.URLParam(r, "address_id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id is required")
		return
	}

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	addr.ID = id

	if err := h.addresses.Update(ctx, sessionID, addr); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, addr)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	id := chi.URLParam(r, "address_id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id is required")
		return
	}

	if err := h.addresses.Delete(ctx, sessionID, id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	id := chi.URLParam(r, "address_id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id is required")
		return
	}

	if err := h.addresses.SetDefault(ctx, sessionID, id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AddressHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	addr, err := h.addresses.Default(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, addr)
}
