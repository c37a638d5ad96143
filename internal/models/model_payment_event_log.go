package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentEventLogType string

const (
	PaymentEventLogTypeOperationStarted  PaymentEventLogType = "operation_started"
	PaymentEventLogTypeOperationHandled  PaymentEventLogType = "operation_handled"
	PaymentEventLogTypeOperationFailed   PaymentEventLogType = "operation_failed"
	PaymentEventLogTypeConnectorInvoked  PaymentEventLogType = "connector_invoked"
	PaymentEventLogTypeStatusTransition  PaymentEventLogType = "status_transition"
)

// PaymentEventLog records one pipeline event for a payment, for diagnostics
// and reconciliation. Written asynchronously; never read on the hot path.
type PaymentEventLog struct {
	ID         string              `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PaymentID  string              `gorm:"column:payment_id;type:varchar(64);index:idx_event_payment_id" json:"payment_id"`
	MerchantID string              `gorm:"column:merchant_id;type:varchar(64)" json:"merchant_id"`
	EventType  PaymentEventLogType `gorm:"column:event_type;type:varchar(32);not null" json:"event_type"`
	TraceID    string              `gorm:"column:trace_id;type:varchar(64)" json:"trace_id"`
	Data       datatypes.JSON      `gorm:"column:data;type:jsonb;default:'{}'" json:"data"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (PaymentEventLog) TableName() string {
	return "payment_event_log"
}
