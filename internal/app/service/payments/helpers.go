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

// validateMerchantID checks a merchant id supplied in the request body against
// the authenticated account.
func validateMerchantID(accountMerchantID string, requestMerchantID *string) error {
	if requestMerchantID == nil || *requestMerchantID == accountMerchantID {
		return nil
	}
	return errs.NotFound(errs.CodeMerchantAccountNotFound,
		fmt.Sprintf("merchant_id %q does not match the authenticated merchant", *requestMerchantID))
}

// validateAmountToCapture enforces amount_to_capture <= amount when both are
// present.
func validateAmountToCapture(amount int64, amountToCapture *int64) error {
	if amountToCapture == nil || *amountToCapture <= amount {
		return nil
	}
	return errs.Validation(errs.CodeInvalidDataFormat,
		"amount_to_capture: expected amount_to_capture lesser than amount")
}

// paymentsCreateRequestValidation resolves the required amount and currency of
// a create request.
func paymentsCreateRequestValidation(req *PaymentsRequest) (int64, types.Currency, error) {
	if req.Amount == nil {
		return 0, "", errs.Validation(errs.CodeMissingRequiredField, "missing required field: amount")
	}
	if req.Currency == nil {
		return 0, "", errs.Validation(errs.CodeInvalidRequestData, "invalid currency")
	}
	currency, err := types.ParseCurrency(*req.Currency)
	if err != nil {
		return 0, "", errs.Wrap(err, errs.KindValidation, errs.CodeInvalidRequestData, "invalid currency")
	}
	return *req.Amount, currency, nil
}

// validateMandate classifies the request against stored-mandate usage. A
// request may set up a new mandate or reference an existing one, not both.
func validateMandate(req *PaymentsRequest) (*types.MandateTxnType, error) {
	if req.MandateData != nil && req.MandateID != nil {
		return nil, errs.Validation(errs.CodeInvalidRequestData,
			"mandate_data and mandate_id cannot both be present")
	}
	if req.MandateData != nil {
		t := types.MandateTxnTypeNew
		return &t, nil
	}
	if req.MandateID != nil {
		t := types.MandateTxnTypeRecurring
		return &t, nil
	}
	return nil, nil
}

// getOrGeneratePaymentID resolves a client-supplied payment id or generates a
// fresh one with the "pay" prefix.
func getOrGeneratePaymentID(state *State, given *string) string {
	if given != nil && *given != "" {
		return *given
	}
	return state.IDGen.Generate("pay")
}

// getTokenPaymentMethodTypeMandateDetails extracts the token, payment-method
// type and mandate setup payload the aggregate carries forward.
func getTokenPaymentMethodTypeMandateDetails(req *PaymentsRequest, mandateType *types.MandateTxnType) (token *string, pmType *types.PaymentMethodType, setupMandate *MandateData) {
	token = req.PaymentToken
	pmType = req.PaymentMethod
	if mandateType != nil && *mandateType == types.MandateTxnTypeNew {
		setupMandate = req.MandateData
	}
	return token, pmType, setupMandate
}

// getAddressForPaymentRequest resolves an address payload through the address
// repository. Failures are fatal; there is no silent default address.
func getAddressForPaymentRequest(ctx context.Context, state *State, payload *types.Address, existingID *string) (*models.Address, error) {
	addr, err := state.Addresses.ResolveAddress(ctx, payload, existingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NotFound(errs.CodePaymentNotFound, "referenced address not found")
		}
		return nil, errs.WrapInternal(err, "failed to resolve address")
	}
	return addr, nil
}

// customerDetailsFromRequest extracts the optional customer echo for the
// downstream customer-upsert collaborator.
func customerDetailsFromRequest(req *PaymentsRequest) *CustomerDetails {
	return &CustomerDetails{
		CustomerID:       req.CustomerID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PhoneCountryCode: req.PhoneCountryCode,
	}
}

// mapIntentUpdateErr converts a store failure on the conditional intent
// update into the taxonomy: a vanished row is PaymentNotFound, the rest is
// internal.
func mapIntentUpdateErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NotFound(errs.CodePaymentNotFound, "payment not found")
	}
	return errs.WrapInternal(err, "failed to update payment intent")
}

// findPaymentTrackers fetches the persisted intent/attempt pair for an
// existing payment; a missing row is PaymentNotFound.
func findPaymentTrackers(ctx context.Context, state *State, paymentID, merchantID string) (*models.PaymentIntent, *models.PaymentAttempt, error) {
	intent, err := state.Store.FindPaymentIntentByPaymentIDMerchantID(ctx, paymentID, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, errs.NotFound(errs.CodePaymentNotFound, "payment not found")
		}
		return nil, nil, errs.WrapInternal(err, "failed to fetch payment intent")
	}
	attempt, err := state.Store.FindPaymentAttemptByPaymentIDMerchantID(ctx, paymentID, merchantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, errs.NotFound(errs.CodePaymentNotFound, "payment not found")
		}
		return nil, nil, errs.WrapInternal(err, "failed to fetch payment attempt")
	}
	return intent, attempt, nil
}

func addressID(addr *models.Address) *string {
	if addr == nil {
		return nil
	}
	return &addr.ID
}
