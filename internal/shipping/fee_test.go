package shipping

import (
	"testing"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFee_PickupIsAlwaysFree(t *testing.T) {
	states := []string{"Delta", "Abuja", "Lagos", "Kano", "", "nowhere"}
	for _, s := range states {
		assert.Equal(t, int64(0), Fee(s, domain.PaymentMethodPayAtPickup), "state %q", s)
	}
}

func TestFee_HomeStateIsMinimum(t *testing.T) {
	assert.Equal(t, int64(1000), Fee("Delta", domain.PaymentMethodCard))
	assert.Equal(t, int64(1000), Fee("delta", domain.PaymentMethodCard), "case-insensitive")
	assert.Equal(t, int64(1000), Fee("DELTA", domain.PaymentMethodBankTransfer))
}

func TestFee_HighCostState(t *testing.T) {
	assert.Equal(t, int64(3000), Fee("Abuja", domain.PaymentMethodCard))
	assert.Equal(t, int64(3000), Fee("abuja", domain.PaymentMethodPayOnDelivery))
}

func TestFee_EveryOtherStateGetsStandardTier(t *testing.T) {
	assert.Equal(t, Fee("Lagos", domain.PaymentMethodCard), Fee("Kano", domain.PaymentMethodCard))
	assert.Equal(t, int64(2000), Fee("Lagos", domain.PaymentMethodCard))
	assert.Equal(t, int64(2000), Fee("", domain.PaymentMethodCard), "empty state defaults to standard")
	assert.Equal(t, int64(2000), Fee("Atlantis", domain.PaymentMethodCard), "unknown state defaults to standard")
}

func TestFee_TierOrdering(t *testing.T) {
	home := Fee("Delta", domain.PaymentMethodCard)
	high := Fee("Abuja", domain.PaymentMethodCard)
	standard := Fee("Enugu", domain.PaymentMethodCard)

	assert.Less(t, home, standard)
	assert.Less(t, standard, high)
}

func TestRequiredFields_CardNeedsEverything(t *testing.T) {
	fields := RequiredFields(domain.PaymentMethodCard, false)

	assert.Contains(t, fields, FieldEmail)
	assert.Contains(t, fields, FieldAddress)
	assert.Contains(t, fields, FieldState)
	assert.Contains(t, fields, FieldLGA)
	assert.Contains(t, fields, FieldCardNumber)
}

func TestRequiredFields_PickupWaivesAddress(t *testing.T) {
	fields := RequiredFields(domain.PaymentMethodPayAtPickup, false)

	assert.Contains(t, fields, FieldEmail)
	assert.NotContains(t, fields, FieldAddress)
	assert.NotContains(t, fields, FieldState)
	assert.NotContains(t, fields, FieldLGA)
}

func TestRequiredFields_DefaultAddressWaivesManualEntry(t *testing.T) {
	fields := RequiredFields(domain.PaymentMethodPayOnDelivery, true)

	assert.Contains(t, fields, FieldPhoneNumber)
	assert.NotContains(t, fields, FieldAddress)
}

func TestRequiredFields_SavedCardSkipsCardFields(t *testing.T) {
	fields := RequiredFields(domain.PaymentMethod("saved_card_42"), false)

	assert.NotContains(t, fields, FieldCardNumber)
	assert.NotContains(t, fields, FieldCardExpiry)
	assert.NotContains(t, fields, FieldCardCVV)
}
