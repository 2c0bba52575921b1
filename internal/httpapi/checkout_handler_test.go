package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fid37is/toolup-store-sub000/internal/checkout"
	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type checkoutServiceMock struct {
	status    domain.CheckoutStatus
	form      domain.CheckoutForm
	quote     *checkout.Quote
	order     *domain.Order
	transfers *checkout.TransferManager
	err       error
}

func (m checkoutServiceMock) Status(sessionID string) domain.CheckoutStatus {
	return m.status
}

func (m checkoutServiceMock) SaveForm(ctx context.Context, sessionID string, form domain.CheckoutForm) error {
	return m.err
}

func (m checkoutServiceMock) LoadForm(ctx context.Context, sessionID string) (domain.CheckoutForm, error) {
	return m.form, m.err
}

func (m checkoutServiceMock) SetDirectItem(ctx context.Context, sessionID string, item domain.CartItem) error {
	return m.err
}

func (m checkoutServiceMock) Quote(ctx context.Context, sessionID string, mode checkout.Mode, form domain.CheckoutForm) (*checkout.Quote, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quote, nil
}

func (m checkoutServiceMock) StartBankTransfer(sessionID string) *checkout.BankTransferSession {
	return m.transfers.Start(sessionID, nil)
}

func (m checkoutServiceMock) ConfirmBankTransfer(sessionID, reference string) error {
	return m.err
}

func (m checkoutServiceMock) Submit(ctx context.Context, sessionID string, mode checkout.Mode, form domain.CheckoutForm) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func TestQuote_Success(t *testing.T) {
	mock := checkoutServiceMock{
		quote: &checkout.Quote{Subtotal: 2000, ShippingFee: 1000, Total: 3000, Currency: "NGN"},
	}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	body, _ := json.Marshal(CheckoutRequestDTO{Mode: checkout.ModeCart})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/quote", bytes.NewReader(body)), "s1")

	handler.Quote(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response checkout.Quote
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Total != 3000 {
		t.Errorf("Expected total 3000, got %d", response.Total)
	}
	if response.Currency != "NGN" {
		t.Errorf("Expected currency NGN, got %s", response.Currency)
	}
}

func TestQuote_EmptyCheckout(t *testing.T) {
	handler := NewCheckoutHandler(checkoutServiceMock{err: checkout.ErrEmptyCheckout}, 5*time.Second)

	body, _ := json.Marshal(CheckoutRequestDTO{Mode: checkout.ModeCart})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/quote", bytes.NewReader(body)), "s1")

	handler.Quote(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "empty_checkout" {
		t.Errorf("Expected error code 'empty_checkout', got '%s'", response.Code)
	}
}

func TestSubmit_Success(t *testing.T) {
	orderID := uuid.New()
	mock := checkoutServiceMock{order: &domain.Order{ID: orderID, SessionID: "s1", Total: 3000}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	body, _ := json.Marshal(CheckoutRequestDTO{Mode: checkout.ModeCart})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/submit", bytes.NewReader(body)), "s1")

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response SubmitResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !response.Success {
		t.Error("Expected success=true")
	}
	if response.OrderID != orderID.String() {
		t.Errorf("Expected order id %s, got %s", orderID, response.OrderID)
	}
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedHTTP int
	}{
		{"incomplete form", checkout.ErrFormIncomplete, http.StatusUnprocessableEntity},
		{"invalid payment method", checkout.ErrInvalidPaymentMethod, http.StatusUnprocessableEntity},
		{"transfer required", checkout.ErrTransferRequired, http.StatusPaymentRequired},
		{"empty checkout", checkout.ErrEmptyCheckout, http.StatusConflict},
		{"unknown mode", checkout.ErrUnknownCheckoutMode, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCheckoutHandler(checkoutServiceMock{err: tt.err}, 5*time.Second)

			body, _ := json.Marshal(CheckoutRequestDTO{Mode: checkout.ModeCart})
			recorder := httptest.NewRecorder()
			request := withSession(httptest.NewRequest("POST", "/submit", bytes.NewReader(body)), "s1")

			handler.Submit(recorder, request)

			if recorder.Code != tt.expectedHTTP {
				t.Errorf("Expected status code %d, got %d", tt.expectedHTTP, recorder.Code)
			}

			var response SubmitResponseDTO
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Success {
				t.Error("Expected success=false")
			}
			if response.Message == "" {
				t.Error("Expected a message on failure")
			}
		})
	}
}

func TestSubmit_InternalErrorHidesDetails(t *testing.T) {
	handler := NewCheckoutHandler(checkoutServiceMock{err: context.DeadlineExceeded}, 5*time.Second)

	body, _ := json.Marshal(CheckoutRequestDTO{Mode: checkout.ModeCart})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/submit", bytes.NewReader(body)), "s1")

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}

	var response SubmitResponseDTO
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Message != "order could not be created, please try again" {
		t.Errorf("Unexpected message: %s", response.Message)
	}
}

func TestStartBankTransfer_ReturnsReference(t *testing.T) {
	mock := checkoutServiceMock{transfers: checkout.NewTransferManager(15*time.Minute, time.Second)}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/bank-transfer", nil), "s1")

	handler.StartBankTransfer(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response TransferResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Reference == "" {
		t.Error("Expected a non-empty reference")
	}
	if response.Remaining <= 0 {
		t.Errorf("Expected a positive countdown, got %d", response.Remaining)
	}
}

func TestConfirmBankTransfer_Expired(t *testing.T) {
	handler := NewCheckoutHandler(checkoutServiceMock{err: checkout.ErrTransferExpired}, 5*time.Second)

	body, _ := json.Marshal(ConfirmTransferRequestDTO{Reference: "ref-1"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/bank-transfer/confirm", bytes.NewReader(body)), "s1")

	handler.ConfirmBankTransfer(recorder, request)

	if recorder.Code != http.StatusPaymentRequired {
		t.Errorf("Expected status code %d, got %d", http.StatusPaymentRequired, recorder.Code)
	}
}

func TestSubmit_Unauthorized(t *testing.T) {
	handler := NewCheckoutHandler(checkoutServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/submit", nil)
	// No session in context

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
