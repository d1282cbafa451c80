package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PauKap/rupees/internal/app"
	"github.com/PauKap/rupees/internal/domain"
)

func TestHandleBuy(t *testing.T) {
	t.Parallel()

	result := domain.BuyResult{
		Product: domain.Product{
			ID:              "prod-123",
			SellerID:        "seller-1",
			ProductName:     "Masala Chips",
			Cost:            65,
			AmountAvailable: 2,
			ExpireDate:      time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		},
		Quantity:   1,
		TotalSpent: 65,
		Change: []domain.Coin{
			{Denomination: 20, Count: 1},
			{Denomination: 10, Count: 1},
			{Denomination: 5, Count: 1},
		},
	}

	validBody := `{"product_id":"prod-123","amount":1}`

	tests := []struct {
		name           string
		body           string
		identity       func(*http.Request)
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success with change breakdown",
			body:           validBody,
			identity:       buyerHeaders,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"change":[{"denomination":20,"count":1},{"denomination":10,"count":1},{"denomination":5,"count":1}]`,
		},
		{
			name:           "missing identity",
			body:           validBody,
			identity:       func(*http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid json",
			body:           `{"product_id":`,
			identity:       buyerHeaders,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing product id",
			body:           `{"amount":1}`,
			identity:       buyerHeaders,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "seller forbidden",
			body:           validBody,
			identity:       sellerHeaders,
			serviceErr:     domain.ErrForbidden,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "product not found",
			body:           validBody,
			identity:       buyerHeaders,
			serviceErr:     domain.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "product expired",
			body:           validBody,
			identity:       buyerHeaders,
			serviceErr:     domain.ErrProductExpired,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeProductExpired,
		},
		{
			name:           "out of stock",
			body:           validBody,
			identity:       buyerHeaders,
			serviceErr:     domain.ErrOutOfStock,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeOutOfStock,
		},
		{
			name:           "insufficient funds",
			body:           validBody,
			identity:       buyerHeaders,
			serviceErr:     domain.ErrInsufficientFunds,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeInsufficientFunds,
		},
		{
			name:           "unrepresentable change is internal",
			body:           validBody,
			identity:       buyerHeaders,
			serviceErr:     domain.ErrUnrepresentableAmount,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubBuyer{result: result, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/buy", bytes.NewBufferString(tt.body))
			tt.identity(req)
			rec := httptest.NewRecorder()

			HandleBuy(svc, zap.NewNop()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleBuy_LogsUnrepresentableChange(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	svc := &stubBuyer{err: domain.ErrUnrepresentableAmount}

	req := httptest.NewRequest(http.MethodPost, "/buy", bytes.NewBufferString(`{"product_id":"prod-123","amount":1}`))
	buyerHeaders(req)
	rec := httptest.NewRecorder()

	HandleBuy(svc, zap.New(core)).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 error log entry, got %d", logs.Len())
	}
}

type stubBuyer struct {
	result domain.BuyResult
	err    error
}

func (s *stubBuyer) Buy(_ context.Context, _ domain.User, _ app.BuyInput) (domain.BuyResult, error) {
	return s.result, s.err
}
