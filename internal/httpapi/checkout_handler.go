package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fid37is/toolup-store-sub000/internal/checkout"
	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type CheckoutService interface {
	Status(sessionID string) domain.CheckoutStatus
	SaveForm(ctx context.Context, sessionID string, form domain.CheckoutForm) error
	LoadForm(ctx context.Context, sessionID string) (domain.CheckoutForm, error)
	SetDirectItem(ctx context.Context, sessionID string, item domain.CartItem) error
	Quote(ctx context.Context, sessionID string, mode checkout.Mode, form domain.CheckoutForm) (*checkout.Quote, error)
	StartBankTransfer(sessionID string) *checkout.BankTransferSession
	ConfirmBankTransfer(sessionID, reference string) error
	Submit(ctx context.Context, sessionID string, mode checkout.Mode, form domain.CheckoutForm) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(svc CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	Mode checkout.Mode       `json:"mode"`
	Form domain.CheckoutForm `json:"form"`
}

type ConfirmTransferRequestDTO struct {
	Reference string `json:"reference"`
}

type TransferResponseDTO struct {
	Reference string    `json:"reference"`
	ExpiresAt time.Time `json:"expiresAt"`
	Remaining int       `json:"remainingSeconds"`
}

type SubmitResponseDTO struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *CheckoutHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(h.checkout.Status(sessionID))})
}

func (h *CheckoutHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	form, err := h.checkout.LoadForm(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, form)
}

func (h *CheckoutHandler) SaveForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var form domain.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.checkout.SaveForm(ctx, sessionID, form); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(h.checkout.Status(sessionID))})
}

func (h *CheckoutHandler) SetDirectItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if item.ProductID == "" && item.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_item", "productId or name is required")
		return
	}

	if err := h.checkout.SetDirectItem(ctx, sessionID, item); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Mode == "" {
		req.Mode = checkout.ModeCart
	}

	quote, err := h.checkout.Quote(ctx, sessionID, req.Mode, req.Form)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

func (h *CheckoutHandler) StartBankTransfer(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	transfer := h.checkout.StartBankTransfer(sessionID)
	respondJSON(w, http.StatusCreated, TransferResponseDTO{
		Reference: transfer.Reference,
		ExpiresAt: transfer.ExpiresAt,
		Remaining: transfer.Remaining(),
	})
}

func (h *CheckoutHandler) ConfirmBankTransfer(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req ConfirmTransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Reference == "" {
		respondError(w, http.StatusBadRequest, "invalid_reference", "reference is required")
		return
	}

	if err := h.checkout.ConfirmBankTransfer(sessionID, req.Reference); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Mode == "" {
		req.Mode = checkout.ModeCart
	}

	order, err := h.checkout.Submit(ctx, sessionID, req.Mode, req.Form)
	if err != nil {
		respondJSON(w, submitErrorStatus(err), SubmitResponseDTO{
			Success: false,
			Message: submitErrorMessage(err),
		})
		return
	}

	respondJSON(w, http.StatusCreated, SubmitResponseDTO{
		Success: true,
		OrderID: order.ID.String(),
	})
}

func submitErrorStatus(err error) int {
	switch {
	case errors.Is(err, checkout.ErrEmptyCheckout),
		errors.Is(err, checkout.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrFormIncomplete),
		errors.Is(err, checkout.ErrInvalidPaymentMethod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrTransferRequired),
		errors.Is(err, checkout.ErrTransferExpired):
		return http.StatusPaymentRequired
	case errors.Is(err, checkout.ErrUnknownCheckoutMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// submitErrorMessage hides internals on unexpected failures; sentinel
// errors are safe to show as-is.
func submitErrorMessage(err error) string {
	if submitErrorStatus(err) == http.StatusInternalServerError {
		return "order could not be created, please try again"
	}
	return err.Error()
}
