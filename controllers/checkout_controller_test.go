package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"

	"github.com/montasssar/EcommerceSnazzyWear/middleware"
	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
	"github.com/montasssar/EcommerceSnazzyWear/services"
)

type fakeSessionCreator struct {
	called int
	sess   *stripe.CheckoutSession
	err    error
}

func (f *fakeSessionCreator) CreateCheckoutSession(items []models.CartItem, currency, userID string) (*stripe.CheckoutSession, error) {
	f.called++
	return f.sess, f.err
}

type fakePaymentRepo struct {
	statuses []string
	payment  *models.Payment
	findErr  error
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	f.statuses = append(f.statuses, payment.Status)
	return nil
}

func (f *fakePaymentRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.payment != nil {
		return f.payment, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, sessionID *string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeWebhookParser struct {
	event stripe.Event
	err   error
}

func (f *fakeWebhookParser) ParseWebhook(r *http.Request) (stripe.Event, error) {
	return f.event, f.err
}

type stubTokens struct{ userID string }

func (s *stubTokens) ValidateToken(tokenStr string) (jwt.MapClaims, error) {
	if s.userID == "" {
		return nil, errors.New("invalid token")
	}
	return jwt.MapClaims{"user_id": s.userID, "role": "user"}, nil
}

func checkoutRouter(gateway *fakeSessionCreator, payments *fakePaymentRepo, tokens middleware.TokenValidator) (*gin.Engine, repository.CartStore) {
	gin.SetMode(gin.TestMode)
	carts := repository.NewMemoryCartStore()
	svc := services.NewCheckoutService(gateway, payments, carts, nil, "usd")
	controller := NewCheckoutController(svc, &fakeWebhookParser{})

	r := gin.New()
	r.POST("/api/stripe", middleware.AuthMiddleware(tokens), controller.CreateSession)
	return r, carts
}

func postItems(r *gin.Engine, token string, items []models.CartItem) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(items)
	req := httptest.NewRequest(http.MethodPost, "/api/stripe", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateSession(t *testing.T) {
	userID := "7b8a2b6e-912c-4a4e-9a9d-0f3a2b6c1d2e"
	items := []models.CartItem{{ID: "p1", Name: "Tee", Price: 25.00, Quantity: 2}}

	t.Run("Unauthenticated Never Reaches Gateway", func(t *testing.T) {
		gateway := &fakeSessionCreator{}
		r, _ := checkoutRouter(gateway, &fakePaymentRepo{}, &stubTokens{})

		rec := postItems(r, "", items)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 0, gateway.called)
	})

	t.Run("Empty Cart", func(t *testing.T) {
		gateway := &fakeSessionCreator{}
		r, _ := checkoutRouter(gateway, &fakePaymentRepo{}, &stubTokens{userID: userID})

		rec := postItems(r, "token", []models.CartItem{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cart is empty")
		assert.Equal(t, 0, gateway.called)
	})

	t.Run("Success Returns Session ID", func(t *testing.T) {
		gateway := &fakeSessionCreator{sess: &stripe.CheckoutSession{ID: "cs_test_abc"}}
		payments := &fakePaymentRepo{}
		r, _ := checkoutRouter(gateway, payments, &stubTokens{userID: userID})

		rec := postItems(r, "token", items)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cs_test_abc", resp["id"])
		assert.Equal(t, []string{models.PaymentStatusProcessing, models.PaymentStatusPending}, payments.statuses)
	})

	t.Run("Gateway Failure", func(t *testing.T) {
		gateway := &fakeSessionCreator{err: errors.New("gateway down")}
		payments := &fakePaymentRepo{}
		r, _ := checkoutRouter(gateway, payments, &stubTokens{userID: userID})

		rec := postItems(r, "token", items)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, []string{models.PaymentStatusProcessing, models.PaymentStatusFailed}, payments.statuses)
	})
}

func webhookRouter(payments repository.PaymentRepository, parser WebhookParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewCheckoutService(&fakeSessionCreator{}, payments, repository.NewMemoryCartStore(), nil, "usd")
	controller := NewCheckoutController(svc, parser)

	r := gin.New()
	r.POST("/api/stripe/webhook", controller.StripeWebhook)
	return r
}

func postWebhook(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func completedEvent(sessionID string) stripe.Event {
	return stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id":"` + sessionID + `"}`)},
	}
}

func TestStripeWebhook(t *testing.T) {
	uid := uuid.New()

	t.Run("Completed Session Acked", func(t *testing.T) {
		payments := &fakePaymentRepo{payment: &models.Payment{
			ID:     uuid.New(),
			UserID: uid,
			Status: models.PaymentStatusPending,
		}}
		r := webhookRouter(payments, &fakeWebhookParser{event: completedEvent("cs_ok")})

		rec := postWebhook(r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{models.PaymentStatusCompleted}, payments.statuses)
	})

	t.Run("Store Failure Answers Non-2xx For Redelivery", func(t *testing.T) {
		// Only a non-2xx makes the gateway redeliver; a transient store
		// outage must not permanently ack the event.
		payments := &fakePaymentRepo{findErr: errors.New("db down")}
		r := webhookRouter(payments, &fakeWebhookParser{event: completedEvent("cs_retry")})

		rec := postWebhook(r)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Bad Signature Rejected", func(t *testing.T) {
		r := webhookRouter(&fakePaymentRepo{}, &fakeWebhookParser{err: errors.New("bad signature")})

		rec := postWebhook(r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unhandled Event Type Acked", func(t *testing.T) {
		r := webhookRouter(&fakePaymentRepo{}, &fakeWebhookParser{event: stripe.Event{Type: "invoice.paid"}})

		rec := postWebhook(r)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
