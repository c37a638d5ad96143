package models

import (
	"time"

	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentAttempt is one attempt to charge via a specific connector under a
// PaymentIntent. The design keeps a single active attempt per intent, so
// (payment_id, merchant_id) is unique here as well; TxnID is generated fresh
// for every new attempt row and never reused.
type PaymentAttempt struct {
	ID                 string                    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PaymentID          string                    `gorm:"column:payment_id;type:varchar(64);not null;uniqueIndex:unique_attempt_payment_id_merchant_id,priority:1" json:"payment_id"`
	MerchantID         string                    `gorm:"column:merchant_id;type:varchar(64);not null;uniqueIndex:unique_attempt_payment_id_merchant_id,priority:2" json:"merchant_id"`
	TxnID              string                    `gorm:"column:txn_id;type:varchar(64);not null;uniqueIndex:unique_attempt_txn_id" json:"txn_id"`
	Status             types.AttemptStatus       `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Amount             int64                     `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency           types.Currency            `gorm:"column:currency;type:varchar(8)" json:"currency"`
	Connector          string                    `gorm:"column:connector;type:varchar(64);not null" json:"connector"`
	PaymentMethod      *types.PaymentMethodType  `gorm:"column:payment_method;type:varchar(32)" json:"payment_method,omitempty"`
	CaptureMethod      *types.CaptureMethod      `gorm:"column:capture_method;type:varchar(16)" json:"capture_method,omitempty"`
	CaptureOn          *time.Time                `gorm:"column:capture_on;default:null" json:"capture_on,omitempty"`
	Confirm            bool                      `gorm:"column:confirm;not null" json:"confirm"`
	AuthenticationType *types.AuthenticationType `gorm:"column:authentication_type;type:varchar(16)" json:"authentication_type,omitempty"`
	LastSyncedAt       *time.Time                `gorm:"column:last_synced_at;default:null" json:"last_synced_at,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

func (PaymentAttempt) TableName() string {
	return "payment_attempt"
}
