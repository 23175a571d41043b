package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/middleware"
	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/services"
)

// WebhookParser is the slice of StripeService the webhook handler needs.
type WebhookParser interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

type CheckoutController struct {
	checkout *services.CheckoutService
	stripe   WebhookParser
}

func NewCheckoutController(checkout *services.CheckoutService, stripe WebhookParser) *CheckoutController {
	return &CheckoutController{checkout: checkout, stripe: stripe}
}

// CreateSession takes the cart item array, opens a checkout session with the
// gateway, and returns its id for the client redirect. Runs behind the auth
// middleware; an unauthenticated request never reaches the gateway.
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var items []models.CartItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
		return
	}

	sessionID, err := cc.checkout.InitiateCheckout(c.Request.Context(), userID, items)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		zap.L().Error("Checkout session creation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sessionID})
}

// StripeWebhook consumes the gateway's session lifecycle notifications.
func (cc *CheckoutController) StripeWebhook(c *gin.Context) {
	event, err := cc.stripe.ParseWebhook(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		if err := cc.handleSession(c, event, models.PaymentStatusCompleted); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}
	case "checkout.session.expired":
		if err := cc.handleSession(c, event, models.PaymentStatusExpired); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// handleSession finalizes the payment for a terminal session event. A
// returned error makes the webhook answer non-2xx so the gateway redelivers;
// CompleteSession is idempotent on already-final payments, so redelivery is
// safe. A payload that does not decode is acked instead: redelivering the
// same bytes cannot succeed.
func (cc *CheckoutController) handleSession(c *gin.Context, event stripe.Event, status string) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		zap.L().Warn("Malformed checkout session event", zap.Error(err))
		return nil
	}
	if err := cc.checkout.CompleteSession(c.Request.Context(), sess.ID, status); err != nil {
		zap.L().Error("Failed to finalize checkout session",
			zap.String("session_id", sess.ID),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}
	return nil
}
