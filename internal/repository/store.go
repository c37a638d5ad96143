// Package repository holds the persistence abstractions the payment pipeline
// runs against: the Store contract with distinguishable unique-violation and
// not-found errors, its gorm and in-memory implementations, and the idempotent
// create-or-resume Tracker built on top of them.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/pkg/types"
)

// Distinguished store errors. The pipeline's correctness depends on the store
// surfacing unique-key conflicts as ErrUniqueViolation rather than silently
// overwriting or silently succeeding twice.
var (
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrNotFound        = errors.New("record not found")
)

// IntentUpdate is the partial update a lifecycle operation may apply to a
// payment intent. Only the fields the operation owns are settable; nil fields
// are left untouched.
type IntentUpdate struct {
	Status            *types.IntentStatus
	ReturnURL         *string
	CustomerID        *string
	ShippingAddressID *string
	BillingAddressID  *string
	LastSyncedAt      *time.Time
}

// Store is the abstract payment store. Every method reports success, a
// distinguished ErrUniqueViolation, a distinguished ErrNotFound, or a generic
// failure.
type Store interface {
	InsertPaymentIntent(ctx context.Context, intent *models.PaymentIntent) error
	FindPaymentIntentByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*models.PaymentIntent, error)
	// UpdatePaymentIntent applies the partial update to the row identified by
	// the intent's (payment_id, merchant_id) and returns the refreshed row.
	UpdatePaymentIntent(ctx context.Context, intent *models.PaymentIntent, update IntentUpdate) (*models.PaymentIntent, error)

	InsertPaymentAttempt(ctx context.Context, attempt *models.PaymentAttempt) error
	FindPaymentAttemptByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*models.PaymentAttempt, error)

	InsertConnectorResponse(ctx context.Context, resp *models.ConnectorResponse) error
	FindConnectorResponseByTxnID(ctx context.Context, paymentID, merchantID, txnID string) (*models.ConnectorResponse, error)
}
