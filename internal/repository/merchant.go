package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fatflowers/gateway/internal/models"
)

// MerchantRepository resolves merchant accounts for request authentication.
type MerchantRepository interface {
	FindByAPIKey(ctx context.Context, apiKey string) (*models.MerchantAccount, error)
	FindByMerchantID(ctx context.Context, merchantID string) (*models.MerchantAccount, error)
}

type GormMerchantRepository struct {
	db *gorm.DB
}

func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

func (r *GormMerchantRepository) FindByAPIKey(ctx context.Context, apiKey string) (*models.MerchantAccount, error) {
	var acct models.MerchantAccount
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acct, nil
}

func (r *GormMerchantRepository) FindByMerchantID(ctx context.Context, merchantID string) (*models.MerchantAccount, error) {
	var acct models.MerchantAccount
	err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acct, nil
}
