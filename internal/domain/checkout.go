package domain

type CheckoutStatus string

const (
	CheckoutStatusIncomplete CheckoutStatus = "INCOMPLETE"
	CheckoutStatusValid      CheckoutStatus = "VALID"
	CheckoutStatusSubmitting CheckoutStatus = "SUBMITTING"
	CheckoutStatusSuccess    CheckoutStatus = "SUCCESS"
	CheckoutStatusFailed     CheckoutStatus = "FAILED"
	CheckoutStatusCancelled  CheckoutStatus = "CANCELLED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusSuccess || s == CheckoutStatusCancelled
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

// CanTransitionTo encodes the legal checkout transitions. FAILED is
// retryable: it goes back through VALID, not to a terminal state.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	switch s {
	case CheckoutStatusIncomplete:
		return next == CheckoutStatusValid || next == CheckoutStatusCancelled
	case CheckoutStatusValid:
		return next == CheckoutStatusIncomplete || next == CheckoutStatusSubmitting || next == CheckoutStatusCancelled
	case CheckoutStatusSubmitting:
		return next == CheckoutStatusSuccess || next == CheckoutStatusFailed
	case CheckoutStatusFailed:
		return next == CheckoutStatusValid || next == CheckoutStatusSubmitting || next == CheckoutStatusCancelled
	default:
		return false
	}
}

// CheckoutForm holds the contact, address and payment fields the
// customer fills in. Address fields are ignored when UseDefaultAddress
// is set or the payment method is pickup.
type CheckoutForm struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`

	Address string `json:"address"`
	State   string `json:"state"`
	LGA     string `json:"lga"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`

	CardNumber string `json:"cardNumber,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"`
	CardCVV    string `json:"cardCvv,omitempty"`

	UseDefaultAddress bool `json:"useDefaultAddress"`
	PaymentVerified   bool `json:"paymentVerified"`
	TermsAccepted     bool `json:"termsAccepted"`
}
