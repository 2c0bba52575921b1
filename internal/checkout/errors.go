package checkout

import "errors"

var (
	ErrEmptyCheckout        = errors.New("nothing to check out")
	ErrFormIncomplete       = errors.New("checkout form is incomplete")
	ErrTransferRequired     = errors.New("bank transfer reference required before submit")
	ErrTransferExpired      = errors.New("bank transfer reference expired")
	ErrIllegalTransition    = errors.New("illegal transition of checkout status")
	ErrDirectItemNotFound   = errors.New("no direct purchase item stored")
	ErrUnknownCheckoutMode  = errors.New("unknown checkout mode")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
