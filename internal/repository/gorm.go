package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/pkg/tool"
)

// GormStore implements Store on postgres through gorm. The connection must be
// opened with TranslateError enabled so driver conflicts surface as
// gorm.ErrDuplicatedKey (see internal/platform/db).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translateStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return err
	}
}

func (s *GormStore) InsertPaymentIntent(ctx context.Context, intent *models.PaymentIntent) error {
	if intent.ID == "" {
		intent.ID = tool.GenerateUUIDV7()
	}
	return translateStoreErr(s.db.WithContext(ctx).Create(intent).Error)
}

func (s *GormStore) FindPaymentIntentByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := s.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ?", paymentID, merchantID).
		First(&intent).Error
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &intent, nil
}

func (s *GormStore) UpdatePaymentIntent(ctx context.Context, intent *models.PaymentIntent, update IntentUpdate) (*models.PaymentIntent, error) {
	cols := map[string]any{}
	if update.Status != nil {
		cols["status"] = *update.Status
	}
	if update.ReturnURL != nil {
		cols["return_url"] = *update.ReturnURL
	}
	if update.CustomerID != nil {
		cols["customer_id"] = *update.CustomerID
	}
	if update.ShippingAddressID != nil {
		cols["shipping_address_id"] = *update.ShippingAddressID
	}
	if update.BillingAddressID != nil {
		cols["billing_address_id"] = *update.BillingAddressID
	}
	if update.LastSyncedAt != nil {
		cols["last_synced_at"] = *update.LastSyncedAt
	}

	if len(cols) > 0 {
		res := s.db.WithContext(ctx).Model(&models.PaymentIntent{}).
			Where("payment_id = ? AND merchant_id = ?", intent.PaymentID, intent.MerchantID).
			Updates(cols)
		if res.Error != nil {
			return nil, translateStoreErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindPaymentIntentByPaymentIDMerchantID(ctx, intent.PaymentID, intent.MerchantID)
}

func (s *GormStore) InsertPaymentAttempt(ctx context.Context, attempt *models.PaymentAttempt) error {
	if attempt.ID == "" {
		attempt.ID = tool.GenerateUUIDV7()
	}
	return translateStoreErr(s.db.WithContext(ctx).Create(attempt).Error)
}

func (s *GormStore) FindPaymentAttemptByPaymentIDMerchantID(ctx context.Context, paymentID, merchantID string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	err := s.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ?", paymentID, merchantID).
		First(&attempt).Error
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &attempt, nil
}

func (s *GormStore) InsertConnectorResponse(ctx context.Context, resp *models.ConnectorResponse) error {
	if resp.ID == "" {
		resp.ID = tool.GenerateUUIDV7()
	}
	return translateStoreErr(s.db.WithContext(ctx).Create(resp).Error)
}

func (s *GormStore) FindConnectorResponseByTxnID(ctx context.Context, paymentID, merchantID, txnID string) (*models.ConnectorResponse, error) {
	var resp models.ConnectorResponse
	err := s.db.WithContext(ctx).
		Where("payment_id = ? AND merchant_id = ? AND txn_id = ?", paymentID, merchantID, txnID).
		First(&resp).Error
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return &resp, nil
}
