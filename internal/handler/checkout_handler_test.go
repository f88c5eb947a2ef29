package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/cache"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

type fakeCheckoutService struct {
	startFn   func(paymentID string, userID int, method string) (*cache.CheckoutSession, error)
	outcomeFn func(paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error)
}

func (f *fakeCheckoutService) Start(ctx context.Context, paymentID string, userID int, method string) (*cache.CheckoutSession, error) {
	return f.startFn(paymentID, userID, method)
}

func (f *fakeCheckoutService) Outcome(ctx context.Context, paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error) {
	return f.outcomeFn(paymentID, userID, isAdmin)
}

func newCheckoutRouter(svc *fakeCheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCheckoutHandler(svc)
	r := gin.New()
	r.POST("/v1/checkout", h.StartCheckout)
	r.GET("/v1/checkout/outcome", h.GetOutcome)
	return r
}

func decodeEnvelope(t *testing.T, body []byte) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp
}

func TestGetOutcomeMissingPaymentID(t *testing.T) {
	r := newCheckoutRouter(&fakeCheckoutService{
		outcomeFn: func(string, int, bool) (*service.CheckoutOutcome, error) {
			t.Fatal("service must not be called without a paymentId")
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout/outcome", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "MISSING_PAYMENT_ID" {
		t.Fatalf("error = %+v, want MISSING_PAYMENT_ID", resp.Error)
	}
}

func TestGetOutcomeUnknownPayment(t *testing.T) {
	r := newCheckoutRouter(&fakeCheckoutService{
		outcomeFn: func(paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error) {
			return nil, utils.ErrPaymentNotFound
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout/outcome?paymentId=nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "PAYMENT_NOT_FOUND" {
		t.Fatalf("error = %+v, want PAYMENT_NOT_FOUND", resp.Error)
	}
}

func TestGetOutcomeOmitsRaffleWhenAbsent(t *testing.T) {
	r := newCheckoutRouter(&fakeCheckoutService{
		outcomeFn: func(paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error) {
			return &service.CheckoutOutcome{
				Payment: &models.Payment{
					PaymentID: paymentID,
					Status:    models.PaymentCompleted,
					Amount:    5997,
					Currency:  "EUR",
				},
			}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout/outcome?paymentId=pay-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if _, ok := resp.Data["payment"]; !ok {
		t.Fatal("payment block missing from outcome")
	}
	if _, ok := resp.Data["raffle"]; ok {
		t.Fatal("raffle block must be omitted when the raffle is absent")
	}
}

func TestGetOutcomeIncludesRaffleContext(t *testing.T) {
	r := newCheckoutRouter(&fakeCheckoutService{
		outcomeFn: func(paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error) {
			raffle := &models.Raffle{
				RaffleID:     "raf-1",
				Title:        "Console giveaway",
				ProductValue: 1999,
				TotalTickets: 100,
				SoldTickets:  97,
				Status:       models.RaffleActive,
			}
			return &service.CheckoutOutcome{
				Payment: &models.Payment{PaymentID: paymentID, Status: models.PaymentCompleted},
				Raffle:  models.NewRaffleDetail(raffle, nil, nil),
			}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout/outcome?paymentId=pay-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data struct {
			Raffle struct {
				ID               string `json:"id"`
				AvailableTickets int    `json:"availableTickets"`
			} `json:"raffle"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Data.Raffle.ID != "raf-1" {
		t.Fatalf("raffle id = %q, want raf-1", resp.Data.Raffle.ID)
	}
	if resp.Data.Raffle.AvailableTickets != 3 {
		t.Fatalf("availableTickets = %d, want 3", resp.Data.Raffle.AvailableTickets)
	}
}

func TestStartCheckoutValidation(t *testing.T) {
	called := false
	r := newCheckoutRouter(&fakeCheckoutService{
		startFn: func(paymentID string, userID int, method string) (*cache.CheckoutSession, error) {
			called = true
			return &cache.CheckoutSession{PaymentID: paymentID, Method: method, CheckoutURL: "https://pay.example/s"}, nil
		},
	})

	// Missing paymentMethod rejected before the service runs.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(`{"paymentId":"pay-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if called {
		t.Fatal("service must not be called with an incomplete body")
	}

	// Complete body goes through.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(`{"paymentId":"pay-1","paymentMethod":"stripe"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !called {
		t.Fatal("service was not called")
	}
}
