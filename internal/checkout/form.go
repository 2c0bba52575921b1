package checkout

import (
	"strings"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/shipping"
)

// PaymentVerified reports whether the chosen payment method is settled
// enough to submit: always for non-card methods and saved cards, only
// after explicit confirmation for a freshly entered card.
func PaymentVerified(form domain.CheckoutForm) bool {
	if form.PaymentMethod == domain.PaymentMethodCard {
		return form.PaymentVerified
	}
	return true
}

// MissingFields lists the contextually-required fields that are still
// empty, in policy order.
func MissingFields(form domain.CheckoutForm) []string {
	values := map[string]string{
		shipping.FieldEmail:       form.Email,
		shipping.FieldFirstName:   form.FirstName,
		shipping.FieldLastName:    form.LastName,
		shipping.FieldPhoneNumber: form.PhoneNumber,
		shipping.FieldAddress:     form.Address,
		shipping.FieldState:       form.State,
		shipping.FieldLGA:         form.LGA,
		shipping.FieldCardNumber:  form.CardNumber,
		shipping.FieldCardExpiry:  form.CardExpiry,
		shipping.FieldCardCVV:     form.CardCVV,
	}

	var missing []string
	for _, field := range shipping.RequiredFields(form.PaymentMethod, form.UseDefaultAddress) {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsComplete is the form validity computation: every required-for-
// context field filled, payment verified, terms accepted.
func IsComplete(form domain.CheckoutForm) bool {
	if !form.PaymentMethod.Valid() {
		return false
	}
	if !form.TermsAccepted {
		return false
	}
	if !PaymentVerified(form) {
		return false
	}
	return len(MissingFields(form)) == 0
}
