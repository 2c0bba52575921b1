package shipping

import "github.com/fid37is/toolup-store-sub000/internal/domain"

// Field names checked by the checkout validity computation.
const (
	FieldEmail       = "email"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldPhoneNumber = "phoneNumber"
	FieldAddress     = "address"
	FieldState       = "state"
	FieldLGA         = "lga"
	FieldCardNumber  = "cardNumber"
	FieldCardExpiry  = "cardExpiry"
	FieldCardCVV     = "cardCvv"
)

var contactFields = []string{FieldEmail, FieldFirstName, FieldLastName, FieldPhoneNumber}

var addressFields = []string{FieldAddress, FieldState, FieldLGA}

var cardFields = []string{FieldCardNumber, FieldCardExpiry, FieldCardCVV}

// RequiredFields returns the field set a checkout form must fill for
// the given payment method. Pickup waives the address fields entirely;
// a default address waives manual address entry; card fields apply only
// to a freshly entered card, never to a saved one.
func RequiredFields(method domain.PaymentMethod, useDefaultAddress bool) []string {
	fields := make([]string, 0, len(contactFields)+len(addressFields)+len(cardFields))
	fields = append(fields, contactFields...)

	if !method.IsPickup() && !useDefaultAddress {
		fields = append(fields, addressFields...)
	}

	if method == domain.PaymentMethodCard {
		fields = append(fields, cardFields...)
	}

	return fields
}
