package types

import "fmt"

// IntentStatus is the merchant-visible lifecycle status of a payment intent.
// Ordering: RequiresPaymentMethod -> RequiresConfirmation -> Processing ->
// {Succeeded, Failed}, with RequiresCapture and Cancelled reachable from
// Processing via connector-result application.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresCapture       IntentStatus = "requires_capture"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusFailed                IntentStatus = "failed"
	IntentStatusCancelled             IntentStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s IntentStatus) Terminal() bool {
	switch s {
	case IntentStatusSucceeded, IntentStatusFailed, IntentStatusCancelled:
		return true
	}
	return false
}

// AttemptStatus is the connector-facing status of a single payment attempt.
// Coarser than IntentStatus; advanced past Pending only by connector results.
type AttemptStatus string

const (
	AttemptStatusPaymentMethodAwaited AttemptStatus = "payment_method_awaited"
	AttemptStatusConfirmationAwaited  AttemptStatus = "confirmation_awaited"
	AttemptStatusPending              AttemptStatus = "pending"
	AttemptStatusAuthorized           AttemptStatus = "authorized"
	AttemptStatusCharged              AttemptStatus = "charged"
	AttemptStatusFailure              AttemptStatus = "failure"
	AttemptStatusVoided               AttemptStatus = "voided"
)

// Currency is an ISO 4217 alphabetic code. Amounts are integer minor units.
type Currency string

const (
	CurrencyAED Currency = "AED"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyHKD Currency = "HKD"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyMYR Currency = "MYR"
	CurrencyNOK Currency = "NOK"
	CurrencyNZD Currency = "NZD"
	CurrencySEK Currency = "SEK"
	CurrencySGD Currency = "SGD"
	CurrencyUSD Currency = "USD"
)

var knownCurrencies = map[Currency]struct{}{
	CurrencyAED: {}, CurrencyAUD: {}, CurrencyCAD: {}, CurrencyCHF: {},
	CurrencyCNY: {}, CurrencyEUR: {}, CurrencyGBP: {}, CurrencyHKD: {},
	CurrencyINR: {}, CurrencyJPY: {}, CurrencyMYR: {}, CurrencyNOK: {},
	CurrencyNZD: {}, CurrencySEK: {}, CurrencySGD: {}, CurrencyUSD: {},
}

// ParseCurrency maps a request currency string onto the known set.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if _, ok := knownCurrencies[c]; !ok {
		return "", fmt.Errorf("unknown currency: %q", s)
	}
	return c, nil
}

type PaymentMethodType string

const (
	PaymentMethodTypeCard         PaymentMethodType = "card"
	PaymentMethodTypeWallet       PaymentMethodType = "wallet"
	PaymentMethodTypeBankTransfer PaymentMethodType = "bank_transfer"
	PaymentMethodTypePayLater     PaymentMethodType = "pay_later"
)

type CaptureMethod string

const (
	CaptureMethodAutomatic CaptureMethod = "automatic"
	CaptureMethodManual    CaptureMethod = "manual"
)

type AuthenticationType string

const (
	AuthenticationTypeThreeDs   AuthenticationType = "three_ds"
	AuthenticationTypeNoThreeDs AuthenticationType = "no_three_ds"
)

type FutureUsage string

const (
	FutureUsageOnSession  FutureUsage = "on_session"
	FutureUsageOffSession FutureUsage = "off_session"
)

// MandateTxnType classifies how a request relates to a stored payment mandate.
// Classification only; mandate execution is handled elsewhere.
type MandateTxnType string

const (
	MandateTxnTypeNew       MandateTxnType = "new_mandate_txn"
	MandateTxnTypeRecurring MandateTxnType = "recurring_mandate_txn"
)

// Address is the address payload carried on payment requests. Both halves are
// optional; an absent payload resolves to no stored address.
type Address struct {
	Address *AddressDetails `json:"address,omitempty"`
	Phone   *PhoneDetails   `json:"phone,omitempty"`
}

type AddressDetails struct {
	Line1     *string `json:"line1,omitempty"`
	Line2     *string `json:"line2,omitempty"`
	Line3     *string `json:"line3,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Zip       *string `json:"zip,omitempty"`
	Country   *string `json:"country,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type PhoneDetails struct {
	Number      *string `json:"number,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
}
