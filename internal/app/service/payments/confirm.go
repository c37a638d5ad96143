package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentConfirm advances an existing payment to processing. It is the
// operation a resumed create routes to when the intent sits at
// RequiresConfirmation.
type PaymentConfirm struct{}

func (PaymentConfirm) Name() string { return "payment_confirm" }

func (c PaymentConfirm) ValidateRequest(_ context.Context, _ *State, req *PaymentsRequest, merchant *models.MerchantAccount) (*ValidateResult, error) {
	if err := validateMerchantID(merchant.MerchantID, req.MerchantID); err != nil {
		return nil, err
	}
	if req.PaymentID == nil || *req.PaymentID == "" {
		return nil, errs.Validation(errs.CodeMissingRequiredField, "missing required field: payment_id")
	}
	if req.Amount != nil {
		if err := validateAmountToCapture(*req.Amount, req.AmountToCapture); err != nil {
			return nil, err
		}
	}
	mandateType, err := validateMandate(req)
	if err != nil {
		return nil, err
	}

	return &ValidateResult{
		NextOperation: c,
		MerchantID:    merchant.MerchantID,
		PaymentID:     IntentID(*req.PaymentID),
		MandateType:   mandateType,
	}, nil
}

func (c PaymentConfirm) GetTracker(ctx context.Context, state *State, paymentID PaymentIDType, merchantID, _ string, req *PaymentsRequest, mandateType *types.MandateTxnType) (*TrackerResult, error) {
	intentID, err := paymentID.PaymentIntentID()
	if err != nil {
		return nil, err
	}

	intent, attempt, err := findPaymentTrackers(ctx, state, intentID, merchantID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case types.IntentStatusRequiresPaymentMethod, types.IntentStatusRequiresConfirmation:
	default:
		return nil, errs.Validation(errs.CodeInvalidRequestData,
			fmt.Sprintf("payment cannot be confirmed while in status %s", intent.Status))
	}

	token, _, setupMandate := getTokenPaymentMethodTypeMandateDetails(req, mandateType)

	shippingAddress, err := getAddressForPaymentRequest(ctx, state, req.Shipping, intent.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	billingAddress, err := getAddressForPaymentRequest(ctx, state, req.Billing, intent.BillingAddressID)
	if err != nil {
		return nil, err
	}

	response, err := state.Store.FindConnectorResponseByTxnID(ctx, intent.PaymentID, merchantID, attempt.TxnID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errs.WrapInternal(err, "failed to fetch connector response")
	}

	confirm := true
	return &TrackerResult{
		NextOperation: c,
		Payment: &PaymentData{
			Intent:            intent,
			Attempt:           attempt,
			ConnectorResponse: response,
			Amount:            intent.Amount,
			Currency:          intent.Currency,
			MandateID:         req.MandateID,
			SetupMandate:      setupMandate,
			Token:             token,
			Address:           PaymentAddress{Shipping: shippingAddress, Billing: billingAddress},
			Confirm:           &confirm,
			PaymentMethodData: req.PaymentMethodData,
			Refunds:           nil,
		},
		Customer: customerDetailsFromRequest(req),
	}, nil
}

func (c PaymentConfirm) UpdateTracker(ctx context.Context, state *State, data *PaymentData) (Operation, *PaymentData, error) {
	// Confirming implies a payment method exists: either supplied now or
	// already captured on the attempt.
	hasPaymentMethod := data.PaymentMethodData != nil || data.Attempt.PaymentMethod != nil
	confirm := data.Confirm != nil && *data.Confirm

	var status *types.IntentStatus
	if settled := SettleIntentStatus(data.Intent.Status, hasPaymentMethod, confirm); settled != data.Intent.Status {
		status = &settled
	}

	updated, err := state.Store.UpdatePaymentIntent(ctx, data.Intent, repository.IntentUpdate{
		Status:     status,
		CustomerID: data.Intent.CustomerID,
	})
	if err != nil {
		return nil, nil, mapIntentUpdateErr(err)
	}
	data.Intent = updated

	// Processing and beyond is driven by connector results; the next request
	// for this payment syncs.
	return PaymentStatus{}, data, nil
}
