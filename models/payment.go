package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses follow the gateway session lifecycle.
const (
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusPending    = "PENDING"
	PaymentStatusCompleted  = "COMPLETED"
	PaymentStatusExpired    = "EXPIRED"
	PaymentStatusFailed     = "FAILED"
)

// Payment records one checkout attempt against the gateway.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	AmountCents     int64     `gorm:"not null" json:"amount_cents"`
	Currency        string    `gorm:"not null" json:"currency"`
	Status          string    `gorm:"not null" json:"status"`
	StripeSessionID *string   `gorm:"index" json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CheckoutEvent is the message published when a checkout attempt reaches a
// terminal state.
type CheckoutEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	PaymentID   string    `json:"payment_id"`
	SessionID   string    `json:"session_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Timestamp   time.Time `json:"timestamp"`
}
