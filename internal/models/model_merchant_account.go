package models

import "time"

// MerchantAccount is the authenticated principal a payment request is checked
// against. APIKey authenticates direct calls; APISecret verifies HS256 bearer
// tokens minted by the merchant's backend.
type MerchantAccount struct {
	ID           string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	MerchantID   string    `gorm:"column:merchant_id;type:varchar(64);not null;uniqueIndex:unique_merchant_id" json:"merchant_id"`
	MerchantName *string   `gorm:"column:merchant_name;type:varchar(128)" json:"merchant_name,omitempty"`
	APIKey       string    `gorm:"column:api_key;type:varchar(128);not null;uniqueIndex:unique_merchant_api_key" json:"-"`
	APISecret    string    `gorm:"column:api_secret;type:varchar(128);not null" json:"-"`
	ReturnURL    *string   `gorm:"column:return_url;type:varchar(255)" json:"return_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MerchantAccount) TableName() string {
	return "merchant_account"
}
