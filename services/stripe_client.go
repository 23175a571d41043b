package services

import (
	"bytes"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// StripeService wraps the gateway SDK: hosted checkout sessions and webhook
// signature verification.
type StripeService struct {
	WebhookKey string
	SuccessURL string
	CancelURL  string
}

func NewStripeService(secretKey, webhookKey, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		WebhookKey: webhookKey,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

// CreateCheckoutSession builds a hosted checkout session for the cart items.
// Unit amounts are in the currency's minor unit.
func (s *StripeService) CreateCheckoutSession(items []models.CartItem, currency, userID string) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(models.UnitAmountCents(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
		ClientReferenceID: stripe.String(userID),
	}
	return session.New(params)
}

// ParseWebhook verifies the event signature and returns the decoded event.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
