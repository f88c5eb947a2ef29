package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

type fakePaymentService struct {
	createFn  func(userID int, raffleID string, quantity int, clientAmount string) (*models.Payment, error)
	confirmFn func(paymentID, method, externalTransactionID string) (*models.Payment, error)
	failFn    func(paymentID, reason string) (*models.Payment, error)
	getFn     func(paymentID string, userID int, isAdmin bool) (*models.Payment, error)
}

func (f *fakePaymentService) Create(ctx context.Context, userID int, raffleID string, quantity int, clientAmount string) (*models.Payment, error) {
	return f.createFn(userID, raffleID, quantity, clientAmount)
}

func (f *fakePaymentService) Confirm(ctx context.Context, paymentID, method, externalTransactionID string) (*models.Payment, error) {
	return f.confirmFn(paymentID, method, externalTransactionID)
}

func (f *fakePaymentService) Fail(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	return f.failFn(paymentID, reason)
}

func (f *fakePaymentService) Get(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
	return f.getFn(paymentID, userID, isAdmin)
}

func (f *fakePaymentService) Tickets(paymentID string, userID int, isAdmin bool) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakePaymentService) ListByUser(userID, page, limit int) ([]models.Payment, int, error) {
	return nil, 0, nil
}

// newPaymentRouter mounts the payment routes behind a stub identity so the
// owner checks see a real user id.
func newPaymentRouter(svc *fakePaymentService, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", models.RoleUser)
	})
	r.POST("/v1/payments", h.CreatePayment)
	r.POST("/v1/payments/confirm", h.ConfirmPayment)
	r.POST("/v1/payments/:paymentId/fail", h.FailPayment)
	return r
}

func TestCreatePaymentBody(t *testing.T) {
	var gotQuantity int
	var gotAmount string
	r := newPaymentRouter(&fakePaymentService{
		createFn: func(userID int, raffleID string, quantity int, clientAmount string) (*models.Payment, error) {
			gotQuantity = quantity
			gotAmount = clientAmount
			return &models.Payment{PaymentID: "pay-1", RaffleRef: &raffleID, Status: models.PaymentPending}, nil
		},
	}, 7)

	body := `{"raffleId":"r1","amount":"59.97","ticketQuantity":3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	if gotQuantity != 3 {
		t.Fatalf("quantity = %d, want 3", gotQuantity)
	}
	if gotAmount != "59.97" {
		t.Fatalf("amount = %q, want \"59.97\"", gotAmount)
	}
}

func TestCreatePaymentMissingQuantity(t *testing.T) {
	r := newPaymentRouter(&fakePaymentService{
		createFn: func(int, string, int, string) (*models.Payment, error) {
			t.Fatal("service must not be called without ticketQuantity")
			return nil, nil
		},
	}, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(`{"raffleId":"r1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestConfirmPaymentOwnPayment(t *testing.T) {
	r := newPaymentRouter(&fakePaymentService{
		getFn: func(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
			if userID != 7 {
				t.Fatalf("owner check ran with userID %d, want 7", userID)
			}
			return &models.Payment{PaymentID: paymentID, UserID: userID, Status: models.PaymentPending}, nil
		},
		confirmFn: func(paymentID, method, externalTransactionID string) (*models.Payment, error) {
			return &models.Payment{PaymentID: paymentID, UserID: 7, Status: models.PaymentCompleted}, nil
		},
	}, 7)

	body := `{"paymentId":"p1","paymentMethod":"stripe","externalTransactionId":"stripe_123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestConfirmPaymentNotOwned(t *testing.T) {
	r := newPaymentRouter(&fakePaymentService{
		getFn: func(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
			return nil, utils.ErrPaymentNotFound
		},
		confirmFn: func(paymentID, method, externalTransactionID string) (*models.Payment, error) {
			t.Fatal("confirm must not run for another user's payment")
			return nil, nil
		},
	}, 7)

	body := `{"paymentId":"someone-elses"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Error == nil || resp.Error.Code != "PAYMENT_NOT_FOUND" {
		t.Fatalf("error = %+v, want PAYMENT_NOT_FOUND", resp.Error)
	}
}

func TestFailPaymentNotOwned(t *testing.T) {
	r := newPaymentRouter(&fakePaymentService{
		getFn: func(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
			return nil, utils.ErrPaymentNotFound
		},
		failFn: func(paymentID, reason string) (*models.Payment, error) {
			t.Fatal("fail must not run for another user's payment")
			return nil, nil
		},
	}, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/someone-elses/fail", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestFailPaymentCarriesReason(t *testing.T) {
	var gotReason string
	r := newPaymentRouter(&fakePaymentService{
		getFn: func(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
			return &models.Payment{PaymentID: paymentID, UserID: userID, Status: models.PaymentPending}, nil
		},
		failFn: func(paymentID, reason string) (*models.Payment, error) {
			gotReason = reason
			return &models.Payment{PaymentID: paymentID, Status: models.PaymentFailed, FailureReason: &reason}, nil
		},
	}, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/p1/fail", strings.NewReader(`{"failureReason":"card declined"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if gotReason != "card declined" {
		t.Fatalf("reason = %q, want \"card declined\"", gotReason)
	}
}
