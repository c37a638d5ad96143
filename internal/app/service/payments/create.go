package payments

import (
	"context"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentCreate is the lifecycle operation that creates a payment, or resumes
// one when the client replays the same payment id.
type PaymentCreate struct{}

func (PaymentCreate) Name() string { return "payment_create" }

func (c PaymentCreate) ValidateRequest(_ context.Context, state *State, req *PaymentsRequest, merchant *models.MerchantAccount) (*ValidateResult, error) {
	if err := validateMerchantID(merchant.MerchantID, req.MerchantID); err != nil {
		return nil, err
	}

	amount, _, err := paymentsCreateRequestValidation(req)
	if err != nil {
		return nil, err
	}
	if err := validateAmountToCapture(amount, req.AmountToCapture); err != nil {
		return nil, err
	}

	mandateType, err := validateMandate(req)
	if err != nil {
		return nil, err
	}

	paymentID := getOrGeneratePaymentID(state, req.PaymentID)

	return &ValidateResult{
		NextOperation: c,
		MerchantID:    merchant.MerchantID,
		PaymentID:     IntentID(paymentID),
		MandateType:   mandateType,
	}, nil
}

func (c PaymentCreate) GetTracker(ctx context.Context, state *State, paymentID PaymentIDType, merchantID, connectorName string, req *PaymentsRequest, mandateType *types.MandateTxnType) (*TrackerResult, error) {
	amount, currency, err := paymentsCreateRequestValidation(req)
	if err != nil {
		return nil, err
	}

	intentID, err := paymentID.PaymentIntentID()
	if err != nil {
		return nil, err
	}

	token, paymentMethodType, setupMandate := getTokenPaymentMethodTypeMandateDetails(req, mandateType)

	shippingAddress, err := getAddressForPaymentRequest(ctx, state, req.Shipping, nil)
	if err != nil {
		return nil, err
	}
	billingAddress, err := getAddressForPaymentRequest(ctx, state, req.Billing, nil)
	if err != nil {
		return nil, err
	}

	attemptDraft := c.makePaymentAttempt(state, intentID, merchantID, connectorName, amount, currency, paymentMethodType, req)
	intentDraft := c.makePaymentIntent(state, intentID, merchantID, connectorName, amount, currency, req,
		addressID(shippingAddress), addressID(billingAddress))

	created, err := state.Tracker.CreateOrResume(ctx, intentDraft, attemptDraft)
	if err != nil {
		return nil, err
	}

	operation := ifNotCreateChangeOperation(created.Resumed, created.Intent.Status, c)

	// A replayed create carries whatever the caller re-sent; the stored
	// intent's amount and currency stay authoritative.
	if created.Resumed {
		amount = created.Intent.Amount
		currency = created.Intent.Currency
	}

	return &TrackerResult{
		NextOperation: operation,
		Payment: &PaymentData{
			Intent:            created.Intent,
			Attempt:           created.Attempt,
			ConnectorResponse: created.Response,
			Amount:            amount,
			Currency:          currency,
			MandateID:         req.MandateID,
			SetupMandate:      setupMandate,
			Token:             token,
			Address:           PaymentAddress{Shipping: shippingAddress, Billing: billingAddress},
			Confirm:           req.Confirm,
			PaymentMethodData: req.PaymentMethodData,
			Refunds:           nil,
		},
		Customer: customerDetailsFromRequest(req),
	}, nil
}

func (c PaymentCreate) UpdateTracker(ctx context.Context, state *State, data *PaymentData) (Operation, *PaymentData, error) {
	status := NextIntentStatus(data.Intent.Status,
		data.PaymentMethodData != nil,
		data.Confirm != nil && *data.Confirm)

	updated, err := state.Store.UpdatePaymentIntent(ctx, data.Intent, repository.IntentUpdate{
		Status:     status,
		CustomerID: data.Intent.CustomerID,
	})
	if err != nil {
		return nil, nil, mapIntentUpdateErr(err)
	}
	data.Intent = updated

	return isConfirm(c, data.Confirm), data, nil
}

func (PaymentCreate) makePaymentAttempt(state *State, paymentID, merchantID, connectorName string, amount int64, currency types.Currency, paymentMethodType *types.PaymentMethodType, req *PaymentsRequest) *models.PaymentAttempt {
	now := time.Now()
	return &models.PaymentAttempt{
		PaymentID:          paymentID,
		MerchantID:         merchantID,
		TxnID:              state.IDGen.Generate("txn"),
		Status:             AttemptStatusForCreate(req.PaymentMethodData, req.Confirm),
		Amount:             amount,
		Currency:           currency,
		Connector:          connectorName,
		PaymentMethod:      paymentMethodType,
		CaptureMethod:      req.CaptureMethod,
		CaptureOn:          req.CaptureOn,
		Confirm:            req.Confirm != nil && *req.Confirm,
		AuthenticationType: req.AuthenticationType,
		LastSyncedAt:       &now,
	}
}

func (PaymentCreate) makePaymentIntent(state *State, paymentID, merchantID, connectorName string, amount int64, currency types.Currency, req *PaymentsRequest, shippingAddressID, billingAddressID *string) *models.PaymentIntent {
	now := time.Now()
	return &models.PaymentIntent{
		PaymentID:                 paymentID,
		MerchantID:                merchantID,
		Status:                    IntentStatusForCreate(req.PaymentMethodData, req.Confirm),
		Amount:                    amount,
		Currency:                  currency,
		ConnectorID:               lo.ToPtr(connectorName),
		Description:               req.Description,
		ReturnURL:                 req.ReturnURL,
		CustomerID:                req.CustomerID,
		ClientSecret:              lo.ToPtr(state.IDGen.GenerateClientSecret(paymentID)),
		ShippingAddressID:         shippingAddressID,
		BillingAddressID:          billingAddressID,
		SetupFutureUsage:          req.SetupFutureUsage,
		OffSession:                req.OffSession,
		StatementDescriptorName:   req.StatementDescriptorName,
		StatementDescriptorSuffix: req.StatementDescriptorSuffix,
		Metadata:                  datatypes.JSON(req.Metadata),
		LastSyncedAt:              &now,
	}
}
