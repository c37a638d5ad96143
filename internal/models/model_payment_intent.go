package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentIntent is the merchant-visible, durable record of one payment's
// overall lifecycle. (payment_id, merchant_id) is the idempotency key for the
// whole workflow; rows are never deleted, a terminal status ends the lifecycle.
type PaymentIntent struct {
	ID         string             `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PaymentID  string             `gorm:"column:payment_id;type:varchar(64);not null;uniqueIndex:unique_payment_id_merchant_id,priority:1" json:"payment_id"`
	MerchantID string             `gorm:"column:merchant_id;type:varchar(64);not null;uniqueIndex:unique_payment_id_merchant_id,priority:2" json:"merchant_id"`
	Status     types.IntentStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Amount     int64              `gorm:"column:amount;type:bigint;not null" json:"amount"`
	Currency   types.Currency     `gorm:"column:currency;type:varchar(8)" json:"currency"`
	// ConnectorID is the connector selected for this payment at creation time.
	ConnectorID *string `gorm:"column:connector_id;type:varchar(64)" json:"connector_id,omitempty"`
	Description *string `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	ReturnURL   *string `gorm:"column:return_url;type:varchar(255)" json:"return_url,omitempty"`
	CustomerID  *string `gorm:"column:customer_id;type:varchar(64)" json:"customer_id,omitempty"`
	// ClientSecret is generated exactly once, at creation.
	ClientSecret              *string            `gorm:"column:client_secret;type:varchar(128)" json:"client_secret,omitempty"`
	ShippingAddressID         *string            `gorm:"column:shipping_address_id;type:varchar(64)" json:"shipping_address_id,omitempty"`
	BillingAddressID          *string            `gorm:"column:billing_address_id;type:varchar(64)" json:"billing_address_id,omitempty"`
	SetupFutureUsage          *types.FutureUsage `gorm:"column:setup_future_usage;type:varchar(16)" json:"setup_future_usage,omitempty"`
	OffSession                *bool              `gorm:"column:off_session" json:"off_session,omitempty"`
	StatementDescriptorName   *string            `gorm:"column:statement_descriptor_name;type:varchar(255)" json:"statement_descriptor_name,omitempty"`
	StatementDescriptorSuffix *string            `gorm:"column:statement_descriptor_suffix;type:varchar(255)" json:"statement_descriptor_suffix,omitempty"`
	Metadata                  datatypes.JSON     `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	LastSyncedAt              *time.Time         `gorm:"column:last_synced_at;default:null" json:"last_synced_at,omitempty"`
	CreatedAt                 time.Time          `json:"created_at"`
	UpdatedAt                 time.Time          `json:"updated_at"`
}

func (PaymentIntent) TableName() string {
	return "payment_intent"
}
