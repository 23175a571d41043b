package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
)

// ErrEmptyCart rejects checkout attempts with nothing to pay for.
var ErrEmptyCart = errors.New("cart is empty")

// SessionCreator is the slice of StripeService the checkout flow needs.
type SessionCreator interface {
	CreateCheckoutSession(items []models.CartItem, currency, userID string) (*stripe.CheckoutSession, error)
}

// EventPublisher pushes checkout lifecycle events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.CheckoutEvent) error
}

// CheckoutService turns a cart into a gateway checkout session and tracks
// the attempt as a payment record. Nothing here retries: a failed session
// creation is surfaced once and the shopper decides what to do next.
type CheckoutService struct {
	stripe    SessionCreator
	payments  repository.PaymentRepository
	carts     repository.CartStore
	publisher EventPublisher
	currency  string
}

func NewCheckoutService(stripe SessionCreator, payments repository.PaymentRepository, carts repository.CartStore, publisher EventPublisher, currency string) *CheckoutService {
	return &CheckoutService{
		stripe:    stripe,
		payments:  payments,
		carts:     carts,
		publisher: publisher,
		currency:  currency,
	}
}

// InitiateCheckout creates a checkout session for the items and returns the
// session id the client redirects with. The payment record is written before
// the gateway call so a crash mid-flight leaves an auditable PROCESSING row.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, userID string, items []models.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		UserID:      uid,
		AmountCents: models.SubtotalCents(items),
		Currency:    s.currency,
		Status:      models.PaymentStatusProcessing,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return "", fmt.Errorf("create payment record: %w", err)
	}

	sess, err := s.stripe.CreateCheckoutSession(items, s.currency, userID)
	if err != nil {
		if dbErr := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentStatusFailed, nil); dbErr != nil {
			zap.L().Error("Failed to mark payment as failed", zap.String("payment_id", payment.ID.String()), zap.Error(dbErr))
		}
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	if err := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentStatusPending, &sess.ID); err != nil {
		zap.L().Error("Failed to attach session to payment", zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}
	return sess.ID, nil
}

// CompleteSession handles a terminal gateway notification for the session:
// the payment record moves to its final status, the shopper's cart is
// cleared on success, and an event is published for downstream consumers.
func (s *CheckoutService) CompleteSession(ctx context.Context, sessionID, status string) error {
	payment, err := s.payments.FindBySessionID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find payment for session %s: %w", sessionID, err)
	}
	if payment.Status == models.PaymentStatusCompleted || payment.Status == models.PaymentStatusExpired {
		return nil // already final
	}

	if err := s.payments.UpdateStatus(ctx, payment.ID, status, nil); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}

	if status == models.PaymentStatusCompleted {
		if err := s.carts.Clear(ctx, payment.UserID.String()); err != nil {
			zap.L().Warn("Failed to clear cart after checkout", zap.String("user_id", payment.UserID.String()), zap.Error(err))
		}
	}

	if s.publisher != nil {
		event := models.CheckoutEvent{
			Type:        "checkout_" + strings.ToLower(status),
			UserID:      payment.UserID.String(),
			PaymentID:   payment.ID.String(),
			SessionID:   sessionID,
			AmountCents: payment.AmountCents,
			Currency:    payment.Currency,
			Timestamp:   time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			zap.L().Warn("Failed to publish checkout event", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return nil
}
