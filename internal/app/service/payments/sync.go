package payments

import (
	"context"
	"errors"
	"time"

	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentStatus retrieves a payment's current persisted state. Status changes
// past Processing come from connector-result application, not from this
// operation; it only refreshes last_synced_at.
type PaymentStatus struct{}

func (PaymentStatus) Name() string { return "payment_status" }

func (s PaymentStatus) ValidateRequest(_ context.Context, _ *State, req *PaymentsRequest, merchant *models.MerchantAccount) (*ValidateResult, error) {
	if err := validateMerchantID(merchant.MerchantID, req.MerchantID); err != nil {
		return nil, err
	}
	if req.PaymentID == nil || *req.PaymentID == "" {
		return nil, errs.Validation(errs.CodeMissingRequiredField, "missing required field: payment_id")
	}
	return &ValidateResult{
		NextOperation: s,
		MerchantID:    merchant.MerchantID,
		PaymentID:     IntentID(*req.PaymentID),
	}, nil
}

func (s PaymentStatus) GetTracker(ctx context.Context, state *State, paymentID PaymentIDType, merchantID, _ string, req *PaymentsRequest, _ *types.MandateTxnType) (*TrackerResult, error) {
	intentID, err := paymentID.PaymentIntentID()
	if err != nil {
		return nil, err
	}

	intent, attempt, err := findPaymentTrackers(ctx, state, intentID, merchantID)
	if err != nil {
		return nil, err
	}

	response, err := state.Store.FindConnectorResponseByTxnID(ctx, intent.PaymentID, merchantID, attempt.TxnID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errs.WrapInternal(err, "failed to fetch connector response")
	}

	shippingAddress, err := getAddressForPaymentRequest(ctx, state, nil, intent.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	billingAddress, err := getAddressForPaymentRequest(ctx, state, nil, intent.BillingAddressID)
	if err != nil {
		return nil, err
	}

	return &TrackerResult{
		NextOperation: s,
		Payment: &PaymentData{
			Intent:            intent,
			Attempt:           attempt,
			ConnectorResponse: response,
			Amount:            intent.Amount,
			Currency:          intent.Currency,
			Address:           PaymentAddress{Shipping: shippingAddress, Billing: billingAddress},
			Confirm:           req.Confirm,
			ForceSync:         req.ForceSync,
			Refunds:           nil,
		},
	}, nil
}

func (s PaymentStatus) UpdateTracker(ctx context.Context, state *State, data *PaymentData) (Operation, *PaymentData, error) {
	now := time.Now()
	updated, err := state.Store.UpdatePaymentIntent(ctx, data.Intent, repository.IntentUpdate{
		LastSyncedAt: &now,
	})
	if err != nil {
		return nil, nil, mapIntentUpdateErr(err)
	}
	data.Intent = updated
	return s, data, nil
}
