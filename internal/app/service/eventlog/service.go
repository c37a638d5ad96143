package eventlog

import (
	"context"
	"encoding/json"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/pkg/logctx"
	"github.com/fatflowers/gateway/pkg/tool"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a payment event log. Nil input and a missing
// database handle are ignored; failures are logged, never surfaced to the
// pipeline.
func (s *Service) Save(ctx context.Context, event *models.PaymentEventLog) {
	if event == nil || s.db == nil {
		return
	}
	go func() {
		if event.ID == "" {
			event.ID = tool.GenerateUUIDV7()
		}
		if err := s.db.Save(event).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save payment event log: %v", err)
		}
	}()
}

// Record marshals the payload and saves an event for the given payment.
func (s *Service) Record(ctx context.Context, paymentID, merchantID string, eventType models.PaymentEventLogType, payload any) {
	s.Save(ctx, s.buildEvent(ctx, paymentID, merchantID, eventType, payload))
}

func (s *Service) buildEvent(ctx context.Context, paymentID, merchantID string, eventType models.PaymentEventLogType, payload any) *models.PaymentEventLog {
	data, err := json.Marshal(payload)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Errorf("failed to marshal payment event payload: %v", err)
		data = []byte("{}")
	}
	var traceID string
	if v, ok := ctx.Value("traceID").(string); ok {
		traceID = v
	}
	return &models.PaymentEventLog{
		PaymentID:  paymentID,
		MerchantID: merchantID,
		EventType:  eventType,
		TraceID:    traceID,
		Data:       datatypes.JSON(data),
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
