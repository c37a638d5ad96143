package payments

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/gateway/pkg/types"
)

func TestIntentStatusForCreate(t *testing.T) {
	pmd := &PaymentMethodData{Card: &Card{CardNumber: "4242424242424242"}}

	require.Equal(t, types.IntentStatusRequiresPaymentMethod, IntentStatusForCreate(nil, nil))
	require.Equal(t, types.IntentStatusRequiresPaymentMethod, IntentStatusForCreate(nil, lo.ToPtr(true)))
	require.Equal(t, types.IntentStatusRequiresConfirmation, IntentStatusForCreate(pmd, nil))
	require.Equal(t, types.IntentStatusRequiresConfirmation, IntentStatusForCreate(pmd, lo.ToPtr(false)))
	require.Equal(t, types.IntentStatusProcessing, IntentStatusForCreate(pmd, lo.ToPtr(true)))
}

func TestAttemptStatusForCreate(t *testing.T) {
	pmd := &PaymentMethodData{Card: &Card{CardNumber: "4242424242424242"}}

	require.Equal(t, types.AttemptStatusPaymentMethodAwaited, AttemptStatusForCreate(nil, lo.ToPtr(true)))
	require.Equal(t, types.AttemptStatusConfirmationAwaited, AttemptStatusForCreate(pmd, nil))
	require.Equal(t, types.AttemptStatusPending, AttemptStatusForCreate(pmd, lo.ToPtr(true)))
}

func TestNextIntentStatus_SingleStep(t *testing.T) {
	// One application advances at most one state, even when the inputs would
	// allow two.
	next := NextIntentStatus(types.IntentStatusRequiresPaymentMethod, true, true)
	require.NotNil(t, next)
	require.Equal(t, types.IntentStatusRequiresConfirmation, *next)

	next = NextIntentStatus(types.IntentStatusRequiresConfirmation, true, true)
	require.NotNil(t, next)
	require.Equal(t, types.IntentStatusProcessing, *next)

	require.Nil(t, NextIntentStatus(types.IntentStatusRequiresPaymentMethod, false, true))
	require.Nil(t, NextIntentStatus(types.IntentStatusRequiresConfirmation, true, false))
}

func TestNextIntentStatus_NoTransitionPastConfirmation(t *testing.T) {
	for _, status := range []types.IntentStatus{
		types.IntentStatusProcessing,
		types.IntentStatusRequiresCapture,
		types.IntentStatusSucceeded,
		types.IntentStatusFailed,
		types.IntentStatusCancelled,
	} {
		require.Nil(t, NextIntentStatus(status, true, true), "status %s", status)
	}
}

func TestSettleIntentStatus_AgreesWithCreationFSM(t *testing.T) {
	// Iterating the update rule from the initial state must land on the same
	// status the creation FSM assigns directly for the same inputs.
	pmd := &PaymentMethodData{Card: &Card{CardNumber: "4242424242424242"}}

	cases := []struct {
		pmd     *PaymentMethodData
		confirm *bool
	}{
		{nil, nil},
		{nil, lo.ToPtr(true)},
		{pmd, nil},
		{pmd, lo.ToPtr(false)},
		{pmd, lo.ToPtr(true)},
	}
	for _, tc := range cases {
		created := IntentStatusForCreate(tc.pmd, tc.confirm)
		settled := SettleIntentStatus(types.IntentStatusRequiresPaymentMethod,
			tc.pmd != nil, tc.confirm != nil && *tc.confirm)
		require.Equal(t, created, settled)
	}
}

func TestSettleIntentStatus_TerminalIsFixed(t *testing.T) {
	for _, status := range []types.IntentStatus{
		types.IntentStatusSucceeded,
		types.IntentStatusFailed,
		types.IntentStatusCancelled,
	} {
		require.True(t, status.Terminal())
		require.Equal(t, status, SettleIntentStatus(status, true, true))
	}
}
