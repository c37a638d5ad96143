package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/pkg/tool"
	"github.com/fatflowers/gateway/pkg/types"
)

// AddressRepository resolves an address payload (or absence) to a stored
// address row. Resolution failures are fatal; there is no silent default
// address.
type AddressRepository interface {
	// ResolveAddress stores the payload as a new address, or returns the
	// pre-existing row when addressID is supplied and the payload is absent.
	// A nil payload with no addressID resolves to (nil, nil).
	ResolveAddress(ctx context.Context, payload *types.Address, addressID *string) (*models.Address, error)
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) ResolveAddress(ctx context.Context, payload *types.Address, addressID *string) (*models.Address, error) {
	if payload == nil {
		if addressID == nil {
			return nil, nil
		}
		var addr models.Address
		err := r.db.WithContext(ctx).Where("id = ?", *addressID).First(&addr).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &addr, nil
	}

	addr := addressFromPayload(payload)
	if addressID != nil {
		addr.ID = *addressID
	}
	if addr.ID == "" {
		addr.ID = tool.GenerateIDWithPrefix("addr")
	}
	if err := r.db.WithContext(ctx).Save(addr).Error; err != nil {
		return nil, err
	}
	return addr, nil
}

func addressFromPayload(payload *types.Address) *models.Address {
	addr := &models.Address{}
	if d := payload.Address; d != nil {
		addr.Line1 = d.Line1
		addr.Line2 = d.Line2
		addr.Line3 = d.Line3
		addr.City = d.City
		addr.State = d.State
		addr.Zip = d.Zip
		addr.Country = d.Country
		addr.FirstName = d.FirstName
		addr.LastName = d.LastName
	}
	if p := payload.Phone; p != nil {
		addr.PhoneNumber = p.Number
		addr.PhoneCountryCode = p.CountryCode
	}
	return addr
}

// MemoryAddressRepository backs tests; same contract as the gorm variant.
type MemoryAddressRepository struct {
	mu    sync.Mutex
	addrs map[string]*models.Address
}

func NewMemoryAddressRepository() *MemoryAddressRepository {
	return &MemoryAddressRepository{addrs: make(map[string]*models.Address)}
}

func (r *MemoryAddressRepository) ResolveAddress(_ context.Context, payload *types.Address, addressID *string) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payload == nil {
		if addressID == nil {
			return nil, nil
		}
		addr, ok := r.addrs[*addressID]
		if !ok {
			return nil, ErrNotFound
		}
		cp := *addr
		return &cp, nil
	}
	addr := addressFromPayload(payload)
	if addressID != nil {
		addr.ID = *addressID
	}
	if addr.ID == "" {
		addr.ID = tool.GenerateIDWithPrefix("addr")
	}
	cp := *addr
	r.addrs[addr.ID] = &cp
	return addr, nil
}
