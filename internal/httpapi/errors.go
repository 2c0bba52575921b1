package httpapi

import (
	"errors"
	"net/http"

	"github.com/fid37is/toolup-store-sub000/internal/address"
	"github.com/fid37is/toolup-store-sub000/internal/cart"
	"github.com/fid37is/toolup-store-sub000/internal/catalog"
	"github.com/fid37is/toolup-store-sub000/internal/checkout"
	"github.com/fid37is/toolup-store-sub000/internal/orders"
	"github.com/fid37is/toolup-store-sub000/internal/wishlist"
)

// handleServiceError maps service sentinel errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *address.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "address validation failed",
			"code":   "validation_failed",
			"fields": validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, wishlist.ErrItemNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrEmptyCheckout):
		respondError(w, http.StatusConflict, "empty_checkout", err.Error())
	case errors.Is(err, checkout.ErrFormIncomplete),
		errors.Is(err, checkout.ErrInvalidPaymentMethod):
		respondError(w, http.StatusUnprocessableEntity, "invalid_form", err.Error())
	case errors.Is(err, checkout.ErrTransferRequired),
		errors.Is(err, checkout.ErrTransferExpired):
		respondError(w, http.StatusPaymentRequired, "transfer_required", err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrUnknownCheckoutMode):
		respondError(w, http.StatusBadRequest, "invalid_mode", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
