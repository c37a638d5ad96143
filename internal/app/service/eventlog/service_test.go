package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/gateway/internal/models"
)

func TestBuildEvent_CarriesPayloadAndTraceID(t *testing.T) {
	s := New(nil, zap.NewNop().Sugar())

	ctx := context.WithValue(context.Background(), "traceID", "trace-7")
	event := s.buildEvent(ctx, "pay_1", "merchant_abc",
		models.PaymentEventLogTypeOperationStarted, map[string]string{"operation": "payment_create"})

	require.Equal(t, "pay_1", event.PaymentID)
	require.Equal(t, "merchant_abc", event.MerchantID)
	require.Equal(t, models.PaymentEventLogTypeOperationStarted, event.EventType)
	require.Equal(t, "trace-7", event.TraceID)
	require.JSONEq(t, `{"operation":"payment_create"}`, string(event.Data))
}

func TestBuildEvent_UnmarshalablePayloadFallsBack(t *testing.T) {
	s := New(nil, zap.NewNop().Sugar())

	event := s.buildEvent(context.Background(), "pay_1", "merchant_abc",
		models.PaymentEventLogTypeOperationFailed, make(chan int))

	require.JSONEq(t, `{}`, string(event.Data))
	require.Empty(t, event.TraceID)
}

func TestSave_NilInputsAreIgnored(t *testing.T) {
	s := New(nil, zap.NewNop().Sugar())

	// Neither a nil event nor a missing database handle may panic.
	s.Save(context.Background(), nil)
	s.Save(context.Background(), &models.PaymentEventLog{PaymentID: "pay_1"})

	s.Record(context.Background(), "pay_1", "merchant_abc",
		models.PaymentEventLogTypeOperationHandled, map[string]string{"status": "processing"})
}
