package payments

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/pkg/types"
)

func TestValidateMerchantID(t *testing.T) {
	require.NoError(t, validateMerchantID("merchant_a", nil))
	require.NoError(t, validateMerchantID("merchant_a", lo.ToPtr("merchant_a")))

	err := validateMerchantID("merchant_a", lo.ToPtr("merchant_b"))
	require.Error(t, err)
	require.Equal(t, errs.KindNotFound, errs.KindOf(err))
	require.Equal(t, errs.CodeMerchantAccountNotFound, errs.CodeOf(err))
}

func TestValidateAmountToCapture(t *testing.T) {
	require.NoError(t, validateAmountToCapture(6540, nil))
	require.NoError(t, validateAmountToCapture(6540, lo.ToPtr(int64(6540))))
	require.NoError(t, validateAmountToCapture(6540, lo.ToPtr(int64(6000))))

	err := validateAmountToCapture(6540, lo.ToPtr(int64(7000)))
	require.Error(t, err)
	require.Equal(t, errs.KindValidation, errs.KindOf(err))
	require.Equal(t, errs.CodeInvalidDataFormat, errs.CodeOf(err))
	require.Contains(t, err.Error(), "amount_to_capture")
}

func TestPaymentsCreateRequestValidation(t *testing.T) {
	_, _, err := paymentsCreateRequestValidation(&PaymentsRequest{Currency: lo.ToPtr("USD")})
	require.Equal(t, errs.CodeMissingRequiredField, errs.CodeOf(err))

	_, _, err = paymentsCreateRequestValidation(&PaymentsRequest{Amount: lo.ToPtr(int64(100))})
	require.Equal(t, errs.CodeInvalidRequestData, errs.CodeOf(err))

	_, _, err = paymentsCreateRequestValidation(&PaymentsRequest{
		Amount: lo.ToPtr(int64(100)), Currency: lo.ToPtr("DOGE"),
	})
	require.Equal(t, errs.CodeInvalidRequestData, errs.CodeOf(err))

	amount, currency, err := paymentsCreateRequestValidation(&PaymentsRequest{
		Amount: lo.ToPtr(int64(6540)), Currency: lo.ToPtr("USD"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(6540), amount)
	require.Equal(t, types.CurrencyUSD, currency)
}

func TestValidateMandate(t *testing.T) {
	mt, err := validateMandate(&PaymentsRequest{})
	require.NoError(t, err)
	require.Nil(t, mt)

	mt, err = validateMandate(&PaymentsRequest{MandateData: &MandateData{}})
	require.NoError(t, err)
	require.Equal(t, types.MandateTxnTypeNew, *mt)

	mt, err = validateMandate(&PaymentsRequest{MandateID: lo.ToPtr("man_1")})
	require.NoError(t, err)
	require.Equal(t, types.MandateTxnTypeRecurring, *mt)

	_, err = validateMandate(&PaymentsRequest{MandateData: &MandateData{}, MandateID: lo.ToPtr("man_1")})
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidRequestData, errs.CodeOf(err))
}

func TestGetOrGeneratePaymentID(t *testing.T) {
	state := &State{IDGen: NewIDGenerator()}

	require.Equal(t, "pay_custom", getOrGeneratePaymentID(state, lo.ToPtr("pay_custom")))

	generated := getOrGeneratePaymentID(state, nil)
	require.True(t, strings.HasPrefix(generated, "pay_"), "got %s", generated)
	require.NotEqual(t, generated, getOrGeneratePaymentID(state, lo.ToPtr("")))
}

func TestPaymentIntentID_KindMismatch(t *testing.T) {
	id := PaymentIDType{Kind: PaymentIDKindConnectorTxn, Value: "dummy_123"}
	_, err := id.PaymentIntentID()
	require.Error(t, err)
	require.Equal(t, errs.KindNotFound, errs.KindOf(err))

	got, err := IntentID("pay_1").PaymentIntentID()
	require.NoError(t, err)
	require.Equal(t, "pay_1", got)
}
