package payments

import "github.com/fatflowers/gateway/pkg/types"

// Status engine: pure functions computing intent/attempt status from current
// state and request flags. No I/O here.

// IntentStatusForCreate is the creation FSM: the status a brand-new intent
// starts in, given whether the request carries payment-method data and whether
// confirmation is requested up front.
func IntentStatusForCreate(pmd *PaymentMethodData, confirm *bool) types.IntentStatus {
	if pmd == nil {
		return types.IntentStatusRequiresPaymentMethod
	}
	if confirm != nil && *confirm {
		return types.IntentStatusProcessing
	}
	return types.IntentStatusRequiresConfirmation
}

// AttemptStatusForCreate mirrors the intent creation FSM at attempt
// granularity. Past Pending the attempt is advanced only by connector results.
func AttemptStatusForCreate(pmd *PaymentMethodData, confirm *bool) types.AttemptStatus {
	if pmd == nil {
		return types.AttemptStatusPaymentMethodAwaited
	}
	if confirm != nil && *confirm {
		return types.AttemptStatusPending
	}
	return types.AttemptStatusConfirmationAwaited
}

// NextIntentStatus is the single-step update rule used by create/confirm
// operations. It returns nil when no transition applies; states other than
// RequiresPaymentMethod and RequiresConfirmation transition only via
// connector-result application, which is outside this engine.
func NextIntentStatus(current types.IntentStatus, hasPaymentMethod, confirm bool) *types.IntentStatus {
	switch current {
	case types.IntentStatusRequiresPaymentMethod:
		if hasPaymentMethod {
			s := types.IntentStatusRequiresConfirmation
			return &s
		}
	case types.IntentStatusRequiresConfirmation:
		if confirm {
			s := types.IntentStatusProcessing
			return &s
		}
	}
	return nil
}

// SettleIntentStatus applies NextIntentStatus until it fixes. Applying it to a
// freshly created record with the creation inputs lands on the same state the
// creation FSM would have chosen directly.
func SettleIntentStatus(current types.IntentStatus, hasPaymentMethod, confirm bool) types.IntentStatus {
	for {
		next := NextIntentStatus(current, hasPaymentMethod, confirm)
		if next == nil {
			return current
		}
		current = *next
	}
}
