package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/gateway/internal/app/service/eventlog"
	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/platform/connector"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/config"
	"github.com/fatflowers/gateway/pkg/types"
)

type coreFixture struct {
	core     *Core
	store    *repository.MemoryStore
	merchant *models.MerchantAccount
}

func newCoreFixture(t *testing.T) *coreFixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	store := repository.NewMemoryStore()
	core := NewCore(
		&config.Config{DefaultConnector: "dummy"},
		log,
		store,
		repository.NewTracker(store),
		repository.NewMemoryAddressRepository(),
		connector.NewRegistry(connector.Dummy{}),
		eventlog.New(nil, log),
	)
	return &coreFixture{
		core:  core,
		store: store,
		merchant: &models.MerchantAccount{
			ID:         "acct_1",
			MerchantID: "merchant_abc",
			APIKey:     "key",
			APISecret:  "secret",
		},
	}
}

func cardRequest() *PaymentMethodData {
	return &PaymentMethodData{Card: &Card{
		CardNumber:   "4242424242424242",
		CardExpMonth: "10",
		CardExpYear:  "29",
		CardCVC:      "123",
	}}
}

func TestCreatePayment_ImmediateConfirm(t *testing.T) {
	f := newCoreFixture(t)

	res, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(6540)),
		Currency:          lo.ToPtr("USD"),
		Confirm:           lo.ToPtr(true),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(res.PaymentID, "pay_"), "got %s", res.PaymentID)
	require.Equal(t, "merchant_abc", res.MerchantID)
	require.Equal(t, types.IntentStatusProcessing, res.Status)
	require.Equal(t, int64(6540), res.Amount)
	require.Equal(t, types.CurrencyUSD, res.Currency)
	require.Equal(t, "dummy", res.Connector)
	require.NotNil(t, res.ClientSecret)
	require.True(t, strings.HasPrefix(*res.ClientSecret, res.PaymentID+"_secret"))
	require.NotNil(t, res.ConnectorTransactionID)

	intents, attempts, responses := f.store.Counts()
	require.Equal(t, 1, intents)
	require.Equal(t, 1, attempts)
	require.Equal(t, 1, responses)

	attempt, err := f.store.FindPaymentAttemptByPaymentIDMerchantID(context.Background(), res.PaymentID, res.MerchantID)
	require.NoError(t, err)
	require.Equal(t, types.AttemptStatusPending, attempt.Status)
	require.True(t, strings.HasPrefix(attempt.TxnID, "txn_"))
}

func TestCreatePayment_NoPaymentMethod(t *testing.T) {
	f := newCoreFixture(t)

	res, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:   lo.ToPtr(int64(1000)),
		Currency: lo.ToPtr("EUR"),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusRequiresPaymentMethod, res.Status)
	require.Equal(t, "payment_create", res.NextOperation)
}

func TestCreatePayment_MethodWithoutConfirm(t *testing.T) {
	f := newCoreFixture(t)

	res, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(1000)),
		Currency:          lo.ToPtr("EUR"),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusRequiresConfirmation, res.Status)
	// No confirm requested, so the connector was never invoked.
	require.Nil(t, res.ConnectorTransactionID)
}

func TestCreatePayment_AmountToCaptureExceedsAmount(t *testing.T) {
	f := newCoreFixture(t)

	_, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:          lo.ToPtr(int64(6540)),
		Currency:        lo.ToPtr("USD"),
		AmountToCapture: lo.ToPtr(int64(7000)),
	})
	require.Error(t, err)
	require.Equal(t, errs.KindValidation, errs.KindOf(err))
	require.Equal(t, errs.CodeInvalidDataFormat, errs.CodeOf(err))

	// Validation failed before any record was written.
	intents, attempts, responses := f.store.Counts()
	require.Zero(t, intents)
	require.Zero(t, attempts)
	require.Zero(t, responses)
}

func TestCreatePayment_ReplayResumesExisting(t *testing.T) {
	f := newCoreFixture(t)

	req := &PaymentsRequest{
		PaymentID:         lo.ToPtr("pay_replay_1"),
		Amount:            lo.ToPtr(int64(2500)),
		Currency:          lo.ToPtr("GBP"),
		PaymentMethodData: cardRequest(),
	}

	first, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, req)
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusRequiresConfirmation, first.Status)

	require.Equal(t, "payment_create", first.NextOperation)

	second, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, req)
	require.NoError(t, err)
	require.Equal(t, first.PaymentID, second.PaymentID)
	require.Equal(t, types.IntentStatusRequiresConfirmation, second.Status)
	// The resume routed through the confirm path, not a second creation.
	require.Equal(t, "payment_status", second.NextOperation)

	// The replay borrowed the stored records instead of creating new ones.
	intents, attempts, responses := f.store.Counts()
	require.Equal(t, 1, intents)
	require.Equal(t, 1, attempts)
	require.Equal(t, 1, responses)
}

func TestConfirmPayment_AdvancesToProcessing(t *testing.T) {
	f := newCoreFixture(t)

	created, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(6540)),
		Currency:          lo.ToPtr("USD"),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusRequiresConfirmation, created.Status)

	confirmed, err := f.core.Run(context.Background(), PaymentConfirm{}, f.merchant, &PaymentsRequest{
		PaymentID:         lo.ToPtr(created.PaymentID),
		Confirm:           lo.ToPtr(true),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusProcessing, confirmed.Status)
	require.NotNil(t, confirmed.ConnectorTransactionID)
	require.Equal(t, "payment_status", confirmed.NextOperation)
}

func TestConfirmPayment_RejectedPastConfirmation(t *testing.T) {
	f := newCoreFixture(t)

	created, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(6540)),
		Currency:          lo.ToPtr("USD"),
		Confirm:           lo.ToPtr(true),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusProcessing, created.Status)

	_, err = f.core.Run(context.Background(), PaymentConfirm{}, f.merchant, &PaymentsRequest{
		PaymentID: lo.ToPtr(created.PaymentID),
		Confirm:   lo.ToPtr(true),
	})
	require.Error(t, err)
	require.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestConfirmPayment_UnknownPayment(t *testing.T) {
	f := newCoreFixture(t)

	_, err := f.core.Run(context.Background(), PaymentConfirm{}, f.merchant, &PaymentsRequest{
		PaymentID: lo.ToPtr("pay_does_not_exist"),
		Confirm:   lo.ToPtr(true),
	})
	require.Error(t, err)
	require.Equal(t, errs.KindNotFound, errs.KindOf(err))
	require.Equal(t, errs.CodePaymentNotFound, errs.CodeOf(err))
}

func TestRetrievePayment_ReportsStoredState(t *testing.T) {
	f := newCoreFixture(t)

	created, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(990)),
		Currency:          lo.ToPtr("JPY"),
		PaymentMethodData: cardRequest(),
	})
	require.NoError(t, err)

	got, err := f.core.Run(context.Background(), PaymentStatus{}, f.merchant, &PaymentsRequest{
		PaymentID: lo.ToPtr(created.PaymentID),
	})
	require.NoError(t, err)
	require.Equal(t, created.PaymentID, got.PaymentID)
	require.Equal(t, types.IntentStatusRequiresConfirmation, got.Status)
	require.Equal(t, int64(990), got.Amount)

	intent, err := f.store.FindPaymentIntentByPaymentIDMerchantID(context.Background(), created.PaymentID, "merchant_abc")
	require.NoError(t, err)
	require.NotNil(t, intent.LastSyncedAt)
}

func TestRetrievePayment_WrongMerchant(t *testing.T) {
	f := newCoreFixture(t)

	created, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:   lo.ToPtr(int64(100)),
		Currency: lo.ToPtr("USD"),
	})
	require.NoError(t, err)

	other := &models.MerchantAccount{ID: "acct_2", MerchantID: "merchant_other"}
	_, err = f.core.Run(context.Background(), PaymentStatus{}, other, &PaymentsRequest{
		PaymentID: lo.ToPtr(created.PaymentID),
	})
	require.Error(t, err)
	require.Equal(t, errs.CodePaymentNotFound, errs.CodeOf(err))
}

func TestCreatePayment_MerchantIDMismatch(t *testing.T) {
	f := newCoreFixture(t)

	_, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		MerchantID: lo.ToPtr("merchant_other"),
		Amount:     lo.ToPtr(int64(100)),
		Currency:   lo.ToPtr("USD"),
	})
	require.Error(t, err)
	require.Equal(t, errs.CodeMerchantAccountNotFound, errs.CodeOf(err))
}

// intentUpdateFailingStore rejects every intent update while delegating the
// rest of the Store contract.
type intentUpdateFailingStore struct {
	repository.Store
}

func (s intentUpdateFailingStore) UpdatePaymentIntent(ctx context.Context, intent *models.PaymentIntent, update repository.IntentUpdate) (*models.PaymentIntent, error) {
	return nil, errs.Internal("intent write rejected")
}

func TestCreatePayment_IntentUpdateFailure(t *testing.T) {
	log := zap.NewNop().Sugar()
	store := intentUpdateFailingStore{Store: repository.NewMemoryStore()}
	core := NewCore(
		&config.Config{DefaultConnector: "dummy"},
		log,
		store,
		repository.NewTracker(store),
		repository.NewMemoryAddressRepository(),
		connector.NewRegistry(connector.Dummy{}),
		eventlog.New(nil, log),
	)
	merchant := &models.MerchantAccount{ID: "acct_1", MerchantID: "merchant_abc"}

	res, err := core.Run(context.Background(), PaymentCreate{}, merchant, &PaymentsRequest{
		Amount:            lo.ToPtr(int64(6540)),
		Currency:          lo.ToPtr("USD"),
		Confirm:           lo.ToPtr(true),
		PaymentMethodData: cardRequest(),
	})
	require.Error(t, err)
	require.Nil(t, res)
	require.Equal(t, errs.KindInternal, errs.KindOf(err))
}

func TestCreatePayment_ConfirmWithoutMethodSkipsConnector(t *testing.T) {
	f := newCoreFixture(t)

	res, err := f.core.Run(context.Background(), PaymentCreate{}, f.merchant, &PaymentsRequest{
		Amount:   lo.ToPtr(int64(1000)),
		Currency: lo.ToPtr("USD"),
		Confirm:  lo.ToPtr(true),
	})
	require.NoError(t, err)
	require.Equal(t, types.IntentStatusRequiresPaymentMethod, res.Status)
	// Confirm alone carries nothing to authorize with.
	require.Nil(t, res.ConnectorTransactionID)

	attempt, err := f.store.FindPaymentAttemptByPaymentIDMerchantID(context.Background(), res.PaymentID, res.MerchantID)
	require.NoError(t, err)
	require.Equal(t, types.AttemptStatusPaymentMethodAwaited, attempt.Status)
}

func TestCreatePayment_ReplayKeepsStoredAmount(t *testing.T) {
	store := repository.NewMemoryStore()
	state := &State{
		Store:     store,
		Tracker:   repository.NewTracker(store),
		Addresses: repository.NewMemoryAddressRepository(),
		IDGen:     NewIDGenerator(),
		Log:       zap.NewNop().Sugar(),
	}
	paymentID := IntentID("pay_replay_amount")

	first, err := PaymentCreate{}.GetTracker(context.Background(), state, paymentID, "merchant_abc", "dummy", &PaymentsRequest{
		Amount:   lo.ToPtr(int64(2500)),
		Currency: lo.ToPtr("GBP"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2500), first.Payment.Amount)

	// Replaying with a different amount must not carry the replayed value
	// into the aggregate; the stored intent stays authoritative.
	second, err := PaymentCreate{}.GetTracker(context.Background(), state, paymentID, "merchant_abc", "dummy", &PaymentsRequest{
		Amount:   lo.ToPtr(int64(9999)),
		Currency: lo.ToPtr("USD"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, first.Payment.Intent.PaymentID, second.Payment.Intent.PaymentID)
	require.Equal(t, int64(2500), second.Payment.Amount)
	require.Equal(t, types.CurrencyGBP, second.Payment.Currency)
}
