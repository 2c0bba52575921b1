package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/session"
	"github.com/fid37is/toolup-store-sub000/internal/shipping"
)

const currency = "NGN"

// Ledger is the slice of the order store the checkout needs.
type Ledger interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

// EventPublisher announces completed orders.
type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, order *domain.Order) error
}

// CartClearer empties a session's cart after a successful order.
type CartClearer interface {
	ClearCart(ctx context.Context, sessionID string) error
}

// AddressBook resolves the session's default address.
type AddressBook interface {
	Default(ctx context.Context, sessionID string) (*domain.Address, error)
}

// Quote is the priced summary shown before submit.
type Quote struct {
	Items       []domain.CartItem `json:"items"`
	Subtotal    int64             `json:"subtotal"`
	ShippingFee int64             `json:"shippingFee"`
	Total       int64             `json:"total"`
	Currency    string            `json:"currency"`
}

// Service drives a checkout session through
// incomplete -> valid -> submitting -> success|failed. Failed submits
// return to valid and stay retryable.
type Service struct {
	agg       *Aggregator
	addresses AddressBook
	ledger    Ledger
	publisher EventPublisher
	carts     CartClearer
	transfers *TransferManager
	store     session.Store
	logger    *zap.Logger

	mu       sync.Mutex
	statuses map[string]domain.CheckoutStatus
}

func NewService(
	agg *Aggregator,
	addresses AddressBook,
	ledger Ledger,
	publisher EventPublisher,
	carts CartClearer,
	transfers *TransferManager,
	store session.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		agg:       agg,
		addresses: addresses,
		ledger:    ledger,
		publisher: publisher,
		carts:     carts,
		transfers: transfers,
		store:     store,
		logger:    logger,
		statuses:  make(map[string]domain.CheckoutStatus),
	}
}

// Status returns the session's checkout status, INCOMPLETE when none is
// tracked yet.
func (s *Service) Status(sessionID string) domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.statuses[sessionID]; ok {
		return st
	}
	return domain.CheckoutStatusIncomplete
}

func (s *Service) transition(sessionID string, next domain.CheckoutStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.statuses[sessionID]
	if !ok {
		cur = domain.CheckoutStatusIncomplete
	}
	if !cur.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur, next)
	}
	s.statuses[sessionID] = next
	return nil
}

func (s *Service) reset(sessionID string) {
	s.mu.Lock()
	delete(s.statuses, sessionID)
	s.mu.Unlock()
}

// SaveForm snapshots the form so it survives the auth-provider redirect
// round-trip.
func (s *Service) SaveForm(ctx context.Context, sessionID string, form domain.CheckoutForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshal checkout form: %w", err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyCheckoutForm, data); err != nil {
		return fmt.Errorf("persist checkout form: %w", err)
	}

	if IsComplete(form) {
		if s.Status(sessionID) == domain.CheckoutStatusIncomplete {
			_ = s.transition(sessionID, domain.CheckoutStatusValid)
		}
	} else if s.Status(sessionID) == domain.CheckoutStatusValid {
		_ = s.transition(sessionID, domain.CheckoutStatusIncomplete)
	}
	return nil
}

// SetDirectItem snapshots a single "buy now" item. A later direct-mode
// checkout reads it instead of the cart.
func (s *Service) SetDirectItem(ctx context.Context, sessionID string, item domain.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal direct purchase item: %w", err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyDirectPurchase, data); err != nil {
		return fmt.Errorf("persist direct purchase item: %w", err)
	}
	return nil
}

// LoadForm restores the snapshotted form, a zero form when none exists.
func (s *Service) LoadForm(ctx context.Context, sessionID string) (domain.CheckoutForm, error) {
	var form domain.CheckoutForm
	data, err := s.store.Get(ctx, sessionID, session.KeyCheckoutForm)
	if errors.Is(err, session.ErrKeyNotFound) {
		return form, nil
	}
	if err != nil {
		return form, fmt.Errorf("read checkout form: %w", err)
	}
	if err := json.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("unmarshal checkout form: %w", err)
	}
	return form, nil
}

// Quote prices the checkout: refreshed line items, fee for the resolved
// destination state, grand total. Recomputed on every call, cheap enough
// for every keystroke.
func (s *Service) Quote(ctx context.Context, sessionID string, mode Mode, form domain.CheckoutForm) (*Quote, error) {
	items, err := s.agg.LineItems(ctx, sessionID, mode)
	if err != nil {
		return nil, err
	}

	state := s.resolveState(ctx, sessionID, form)
	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal()
	}
	fee := shipping.Fee(state, form.PaymentMethod)

	return &Quote{
		Items:       items,
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
		Currency:    currency,
	}, nil
}

// StartBankTransfer issues a payment reference for the session. Expiry
// cancels the pending checkout and resets it to the form step.
func (s *Service) StartBankTransfer(sessionID string) *BankTransferSession {
	return s.transfers.Start(sessionID, func() {
		s.logger.Info("bank transfer reference expired, cancelling checkout",
			zap.String("session_id", sessionID))
		s.cancel(sessionID)
	})
}

// ConfirmBankTransfer marks the reference paid.
func (s *Service) ConfirmBankTransfer(sessionID, reference string) error {
	return s.transfers.Confirm(sessionID, reference)
}

func (s *Service) cancel(sessionID string) {
	if err := s.transition(sessionID, domain.CheckoutStatusCancelled); err != nil {
		s.logger.Warn("cancel transition rejected", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.reset(sessionID)
}

// Submit runs the full order creation. Any failure is retryable: the
// session drops back to VALID and the caller can resubmit.
func (s *Service) Submit(ctx context.Context, sessionID string, mode Mode, form domain.CheckoutForm) (*domain.Order, error) {
	if !form.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !IsComplete(form) {
		return nil, ErrFormIncomplete
	}

	if form.PaymentMethod == domain.PaymentMethodBankTransfer {
		transfer, ok := s.transfers.Get(sessionID)
		if !ok {
			return nil, ErrTransferRequired
		}
		if transfer.Expired() || !transfer.Confirmed() {
			return nil, ErrTransferRequired
		}
	}

	if s.Status(sessionID) == domain.CheckoutStatusIncomplete {
		if err := s.transition(sessionID, domain.CheckoutStatusValid); err != nil {
			return nil, err
		}
	}
	if err := s.transition(sessionID, domain.CheckoutStatusSubmitting); err != nil {
		return nil, err
	}

	order, err := s.createOrder(ctx, sessionID, mode, form)
	if err != nil {
		// FAILED, then back to VALID: the submit button stays live.
		_ = s.transition(sessionID, domain.CheckoutStatusFailed)
		_ = s.transition(sessionID, domain.CheckoutStatusValid)
		return nil, err
	}

	_ = s.transition(sessionID, domain.CheckoutStatusSuccess)
	s.finish(sessionID)
	return order, nil
}

func (s *Service) createOrder(ctx context.Context, sessionID string, mode Mode, form domain.CheckoutForm) (*domain.Order, error) {
	items, err := s.agg.LineItems(ctx, sessionID, mode)
	if err != nil {
		return nil, err
	}

	state := s.resolveState(ctx, sessionID, form)
	var subtotal int64
	orderItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		subtotal += item.Subtotal()
		orderItems[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	fee := shipping.Fee(state, form.PaymentMethod)

	order := &domain.Order{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Name:          form.FirstName + " " + form.LastName,
		Email:         form.Email,
		Items:         orderItems,
		Total:         subtotal + fee,
		ShippingFee:   fee,
		PaymentMethod: form.PaymentMethod,
		Currency:      currency,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     time.Now(),
	}

	if err := s.ledger.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.publisher.PublishOrderCompleted(ctx, order); err != nil {
		// The order exists; the consumer just won't see it. Clear the
		// cart directly instead.
		s.logger.Warn("order-completed publish failed",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		s.logger.Warn("cart clear after order failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return order, nil
}

// finish tears down per-session checkout state after success.
func (s *Service) finish(sessionID string) {
	s.transfers.Cancel(sessionID)
	s.reset(sessionID)

	ctx, cancelFn := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelFn()
	for _, key := range []string{
		session.KeyCheckoutForm,
		session.KeyCheckoutAddress,
		session.KeyDirectPurchase,
		session.KeyGuestCheckout,
	} {
		if err := s.store.Delete(ctx, sessionID, key); err != nil {
			s.logger.Warn("checkout key cleanup failed",
				zap.String("session_id", sessionID), zap.String("key", key), zap.Error(err))
		}
	}
}

// resolveState picks the destination state: the default address when the
// form says so, otherwise the manually entered one.
func (s *Service) resolveState(ctx context.Context, sessionID string, form domain.CheckoutForm) string {
	if !form.UseDefaultAddress {
		return form.State
	}
	addr, err := s.addresses.Default(ctx, sessionID)
	if err != nil {
		s.logger.Warn("default address lookup failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return form.State
	}
	return addr.State
}
