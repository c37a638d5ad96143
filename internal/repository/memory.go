package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/pkg/tool"
)

// MemoryStore implements Store with mutex-guarded maps. It enforces the same
// unique keys as the postgres schema and is suitable for tests and local
// development; data does not survive the process.
type MemoryStore struct {
	mu        sync.Mutex
	intents   map[string]*models.PaymentIntent    // payment_id|merchant_id
	attempts  map[string]*models.PaymentAttempt   // payment_id|merchant_id
	responses map[string]*models.ConnectorResponse // txn_id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		intents:   make(map[string]*models.PaymentIntent),
		attempts:  make(map[string]*models.PaymentAttempt),
		responses: make(map[string]*models.ConnectorResponse),
	}
}

func paymentKey(paymentID, merchantID string) string {
	return paymentID + "|" + merchantID
}

func (s *MemoryStore) InsertPaymentIntent(_ context.Context, intent *models.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := paymentKey(intent.PaymentID, intent.MerchantID)
	if _, exists := s.intents[key]; exists {
		return ErrUniqueViolation
	}
	if intent.ID == "" {
		intent.ID = tool.GenerateUUIDV7()
	}
	intent.CreatedAt = time.Now()
	intent.UpdatedAt = intent.CreatedAt
	cp := *intent
	s.intents[key] = &cp
	return nil
}

func (s *MemoryStore) FindPaymentIntentByPaymentIDMerchantID(_ context.Context, paymentID, merchantID string) (*models.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[paymentKey(paymentID, merchantID)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *intent
	return &cp, nil
}

func (s *MemoryStore) UpdatePaymentIntent(_ context.Context, intent *models.PaymentIntent, update IntentUpdate) (*models.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.intents[paymentKey(intent.PaymentID, intent.MerchantID)]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Status != nil {
		stored.Status = *update.Status
	}
	if update.ReturnURL != nil {
		stored.ReturnURL = update.ReturnURL
	}
	if update.CustomerID != nil {
		stored.CustomerID = update.CustomerID
	}
	if update.ShippingAddressID != nil {
		stored.ShippingAddressID = update.ShippingAddressID
	}
	if update.BillingAddressID != nil {
		stored.BillingAddressID = update.BillingAddressID
	}
	if update.LastSyncedAt != nil {
		stored.LastSyncedAt = update.LastSyncedAt
	}
	stored.UpdatedAt = time.Now()
	cp := *stored
	return &cp, nil
}

func (s *MemoryStore) InsertPaymentAttempt(_ context.Context, attempt *models.PaymentAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := paymentKey(attempt.PaymentID, attempt.MerchantID)
	if _, exists := s.attempts[key]; exists {
		return ErrUniqueViolation
	}
	if attempt.ID == "" {
		attempt.ID = tool.GenerateUUIDV7()
	}
	attempt.CreatedAt = time.Now()
	attempt.UpdatedAt = attempt.CreatedAt
	cp := *attempt
	s.attempts[key] = &cp
	return nil
}

func (s *MemoryStore) FindPaymentAttemptByPaymentIDMerchantID(_ context.Context, paymentID, merchantID string) (*models.PaymentAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.attempts[paymentKey(paymentID, merchantID)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *attempt
	return &cp, nil
}

func (s *MemoryStore) InsertConnectorResponse(_ context.Context, resp *models.ConnectorResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.responses[resp.TxnID]; exists {
		return ErrUniqueViolation
	}
	if resp.ID == "" {
		resp.ID = tool.GenerateUUIDV7()
	}
	resp.CreatedAt = time.Now()
	resp.UpdatedAt = resp.CreatedAt
	cp := *resp
	s.responses[resp.TxnID] = &cp
	return nil
}

func (s *MemoryStore) FindConnectorResponseByTxnID(_ context.Context, paymentID, merchantID, txnID string) (*models.ConnectorResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.responses[txnID]
	if !ok || resp.PaymentID != paymentID || resp.MerchantID != merchantID {
		return nil, ErrNotFound
	}
	cp := *resp
	return &cp, nil
}

// Counts reports row counts per table, for test assertions on idempotency.
func (s *MemoryStore) Counts() (intents, attempts, responses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intents), len(s.attempts), len(s.responses)
}
