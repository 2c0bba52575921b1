package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fid37is/toolup-store-sub000/internal/address"
	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type addressServiceMock struct {
	addrs []domain.Address
	err   error
}

func (m addressServiceMock) List(ctx context.Context, sessionID string) ([]domain.Address, error) {
	return m.addrs, m.err
}

func (m addressServiceMock) Add(ctx context.Context, sessionID string, addr domain.Address) (*domain.Address, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &addr, nil
}

func (m addressServiceMock) Update(ctx context.Context, sessionID string, addr domain.Address) error {
	return m.err
}

func (m addressServiceMock) Delete(ctx context.Context, sessionID, id string) error {
	return m.err
}

func (m addressServiceMock) SetDefault(ctx context.Context, sessionID, id string) error {
	return m.err
}

func (m addressServiceMock) Default(ctx context.Context, sessionID string) (*domain.Address, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.addrs) == 0 {
		return nil, address.ErrAddressNotFound
	}
	return &m.addrs[0], nil
}

func TestAddAddress_ValidationFailure(t *testing.T) {
	mock := addressServiceMock{
		err: &address.ValidationError{Fields: map[string]string{
			"state": "state is required",
			"lga":   "lga is required",
		}},
	}
	handler := NewAddressHandler(mock, 5*time.Second)

	body, _ := json.Marshal(domain.Address{AddressName: "Home"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "s1")

	handler.Add(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status code %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}

	var response struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Code != "validation_failed" {
		t.Errorf("Expected error code 'validation_failed', got '%s'", response.Code)
	}
	if len(response.Fields) != 2 {
		t.Errorf("Expected 2 field errors, got %d", len(response.Fields))
	}
}

func TestGetDefault_NoneSaved(t *testing.T) {
	handler := NewAddressHandler(addressServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/default", nil), "s1")

	handler.GetDefault(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestListAddresses_EmptyIsArray(t *testing.T) {
	handler := NewAddressHandler(addressServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/", nil), "s1")

	handler.List(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if body := recorder.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}
