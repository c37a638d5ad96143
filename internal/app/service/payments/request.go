package payments

import (
	"encoding/json"
	"time"

	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/pkg/types"
)

// PaymentsRequest is the merchant-facing request every lifecycle operation
// consumes. Optional fields are pointers so "absent" and "zero" stay distinct.
type PaymentsRequest struct {
	PaymentID                 *string                   `json:"payment_id,omitempty"`
	MerchantID                *string                   `json:"merchant_id,omitempty"`
	Amount                    *int64                    `json:"amount,omitempty"`
	Currency                  *string                   `json:"currency,omitempty"`
	AmountToCapture           *int64                    `json:"amount_to_capture,omitempty"`
	CaptureMethod             *types.CaptureMethod      `json:"capture_method,omitempty"`
	CaptureOn                 *time.Time                `json:"capture_on,omitempty"`
	Confirm                   *bool                     `json:"confirm,omitempty"`
	CustomerID                *string                   `json:"customer_id,omitempty"`
	Email                     *string                   `json:"email,omitempty"`
	Name                      *string                   `json:"name,omitempty"`
	Phone                     *string                   `json:"phone,omitempty"`
	PhoneCountryCode          *string                   `json:"phone_country_code,omitempty"`
	Description               *string                   `json:"description,omitempty"`
	ReturnURL                 *string                   `json:"return_url,omitempty"`
	SetupFutureUsage          *types.FutureUsage        `json:"setup_future_usage,omitempty"`
	OffSession                *bool                     `json:"off_session,omitempty"`
	AuthenticationType        *types.AuthenticationType `json:"authentication_type,omitempty"`
	PaymentMethod             *types.PaymentMethodType  `json:"payment_method,omitempty"`
	PaymentMethodData         *PaymentMethodData        `json:"payment_method_data,omitempty"`
	PaymentToken              *string                   `json:"payment_token,omitempty"`
	Shipping                  *types.Address            `json:"shipping,omitempty"`
	Billing                   *types.Address            `json:"billing,omitempty"`
	StatementDescriptorName   *string                   `json:"statement_descriptor_name,omitempty"`
	StatementDescriptorSuffix *string                   `json:"statement_descriptor_suffix,omitempty"`
	MandateData               *MandateData              `json:"mandate_data,omitempty"`
	MandateID                 *string                   `json:"mandate_id,omitempty"`
	ClientSecret              *string                   `json:"client_secret,omitempty"`
	ForceSync                 *bool                     `json:"force_sync,omitempty"`
	Metadata                  json.RawMessage           `json:"metadata,omitempty"`
}

// PaymentMethodData is the instrument payload; exactly one member is set.
type PaymentMethodData struct {
	Card *Card `json:"card,omitempty"`
}

type Card struct {
	CardNumber     string `json:"card_number"`
	CardExpMonth   string `json:"card_exp_month"`
	CardExpYear    string `json:"card_exp_year"`
	CardHolderName string `json:"card_holder_name"`
	CardCVC        string `json:"card_cvc"`
}

// MandateData sets up a future-payment authorization alongside this payment.
type MandateData struct {
	CustomerAcceptance *CustomerAcceptance `json:"customer_acceptance,omitempty"`
}

type CustomerAcceptance struct {
	AcceptanceType string     `json:"acceptance_type"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
}

// PaymentIDKind discriminates the ways a client may reference a payment.
type PaymentIDKind string

const (
	PaymentIDKindIntent       PaymentIDKind = "payment_intent_id"
	PaymentIDKindConnectorTxn PaymentIDKind = "connector_transaction_id"
	PaymentIDKindAttempt      PaymentIDKind = "payment_attempt_id"
)

// PaymentIDType is a resolved client payment reference.
type PaymentIDType struct {
	Kind  PaymentIDKind
	Value string
}

func IntentID(id string) PaymentIDType {
	return PaymentIDType{Kind: PaymentIDKindIntent, Value: id}
}

// PaymentIntentID returns the intent id, or PaymentNotFound when the
// reference is of a kind this pipeline cannot resolve to an intent.
func (p PaymentIDType) PaymentIntentID() (string, error) {
	if p.Kind != PaymentIDKindIntent {
		return "", errs.NotFound(errs.CodePaymentNotFound, "payment reference is not a payment intent id")
	}
	return p.Value, nil
}

// PaymentsResponse is what the driver hands back to the transport layer.
type PaymentsResponse struct {
	PaymentID              string             `json:"payment_id"`
	MerchantID             string             `json:"merchant_id"`
	Status                 types.IntentStatus `json:"status"`
	Amount                 int64              `json:"amount"`
	Currency               types.Currency     `json:"currency"`
	Connector              string             `json:"connector,omitempty"`
	ClientSecret           *string            `json:"client_secret,omitempty"`
	Description            *string            `json:"description,omitempty"`
	ReturnURL              *string            `json:"return_url,omitempty"`
	CustomerID             *string            `json:"customer_id,omitempty"`
	MandateID              *string            `json:"mandate_id,omitempty"`
	ConnectorTransactionID *string            `json:"connector_transaction_id,omitempty"`
	NextOperation          string             `json:"next_operation,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
}
