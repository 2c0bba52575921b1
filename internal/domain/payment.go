package domain

import "strings"

// PaymentMethod is the customer's choice at checkout. Saved cards carry
// their stored-card id as a suffix ("saved_card_<id>").
type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodBankTransfer  PaymentMethod = "bank_transfer"
	PaymentMethodPayOnDelivery PaymentMethod = "pay_on_delivery"
	PaymentMethodPayAtPickup   PaymentMethod = "pay_at_pickup"
)

const savedCardPrefix = "saved_card_"

func (m PaymentMethod) IsSavedCard() bool {
	return strings.HasPrefix(string(m), savedCardPrefix)
}

// SavedCardID returns the stored-card id for a saved_card_<id> method,
// empty string otherwise.
func (m PaymentMethod) SavedCardID() string {
	if !m.IsSavedCard() {
		return ""
	}
	return strings.TrimPrefix(string(m), savedCardPrefix)
}

// IsPickup reports whether the customer collects the goods in person.
// Pickup waives the shipping fee and the address requirement.
func (m PaymentMethod) IsPickup() bool {
	return m == PaymentMethodPayAtPickup
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodPayOnDelivery, PaymentMethodPayAtPickup:
		return true
	}
	return m.IsSavedCard() && m.SavedCardID() != ""
}

func (m PaymentMethod) String() string {
	return string(m)
}
