package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConnectorResponse correlates one PaymentAttempt with the raw result of a
// connector invocation. Exactly one row exists per attempt, created before the
// connector is ever called; ConnectorTransactionID stays null until the
// connector replies. A second insert for the same txn_id is a hard error.
type ConnectorResponse struct {
	ID                     string         `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PaymentID              string         `gorm:"column:payment_id;type:varchar(64);not null" json:"payment_id"`
	MerchantID             string         `gorm:"column:merchant_id;type:varchar(64);not null" json:"merchant_id"`
	TxnID                  string         `gorm:"column:txn_id;type:varchar(64);not null;uniqueIndex:unique_connector_response_txn_id" json:"txn_id"`
	ConnectorName          string         `gorm:"column:connector_name;type:varchar(64);not null" json:"connector_name"`
	ConnectorTransactionID *string        `gorm:"column:connector_transaction_id;type:varchar(128)" json:"connector_transaction_id,omitempty"`
	AuthenticationData     datatypes.JSON `gorm:"column:authentication_data;type:jsonb" json:"authentication_data,omitempty"`
	EncodedData            *string        `gorm:"column:encoded_data;type:text" json:"encoded_data,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

func (ConnectorResponse) TableName() string {
	return "connector_response"
}
