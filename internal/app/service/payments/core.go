package payments

import (
	"context"

	"go.uber.org/zap"

	"github.com/fatflowers/gateway/internal/app/service/eventlog"
	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/platform/connector"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/config"
	"github.com/fatflowers/gateway/pkg/logctx"
)

// Core is the pipeline driver: it sequences Validate -> GetTracker ->
// connector invocation -> UpdateTracker for one request and surfaces the
// resulting aggregate as a response. Each step hands back the operation that
// runs next; a request may therefore start as a create and finish as a
// confirm.
type Core struct {
	state      *State
	connectors *connector.Registry
	events     *eventlog.Service
	cfg        *config.Config
	log        *zap.SugaredLogger
}

func NewCore(cfg *config.Config, log *zap.SugaredLogger, store repository.Store, tracker *repository.Tracker, addresses repository.AddressRepository, connectors *connector.Registry, events *eventlog.Service) *Core {
	return &Core{
		state: &State{
			Store:     store,
			Tracker:   tracker,
			Addresses: addresses,
			IDGen:     NewIDGenerator(),
			Log:       log,
		},
		connectors: connectors,
		events:     events,
		cfg:        cfg,
		log:        log,
	}
}

// Run executes one operation for one request against the authenticated
// merchant and returns the response for the transport layer.
func (c *Core) Run(ctx context.Context, op Operation, merchant *models.MerchantAccount, req *PaymentsRequest) (*PaymentsResponse, error) {
	log := logctx.FromCtx(ctx, c.log)

	validated, err := op.ValidateRequest(ctx, c.state, req, merchant)
	if err != nil {
		return nil, err
	}
	op = validated.NextOperation

	c.events.Record(ctx, validated.PaymentID.Value, validated.MerchantID,
		models.PaymentEventLogTypeOperationStarted, map[string]string{"operation": op.Name()})

	connectorName := c.cfg.DefaultConnector

	tracked, err := op.GetTracker(ctx, c.state, validated.PaymentID, validated.MerchantID, connectorName, req, validated.MandateType)
	if err != nil {
		c.events.Record(ctx, validated.PaymentID.Value, validated.MerchantID,
			models.PaymentEventLogTypeOperationFailed, map[string]string{"operation": op.Name(), "error": err.Error()})
		return nil, err
	}
	op = tracked.NextOperation
	data := tracked.Payment

	// The connector sits between tracker fetch and persist; it is invoked
	// only when the request is confirm-bound. Result application to the
	// stored records happens in a separate flow.
	if c.shouldCallConnector(data) {
		if err := c.callConnector(ctx, data); err != nil {
			log.Errorw("connector invocation failed",
				"payment_id", data.Intent.PaymentID, "connector", data.Attempt.Connector, "err", err)
			return nil, err
		}
	}

	statusBefore := data.Intent.Status
	paymentID, merchantID := data.Intent.PaymentID, data.Intent.MerchantID
	next, data, err := op.UpdateTracker(ctx, c.state, data)
	if err != nil {
		c.events.Record(ctx, paymentID, merchantID,
			models.PaymentEventLogTypeOperationFailed, map[string]string{"operation": op.Name(), "error": err.Error()})
		return nil, err
	}
	if data.Intent.Status != statusBefore {
		c.events.Record(ctx, data.Intent.PaymentID, data.Intent.MerchantID,
			models.PaymentEventLogTypeStatusTransition, map[string]string{
				"from": string(statusBefore),
				"to":   string(data.Intent.Status),
			})
	}

	c.events.Record(ctx, data.Intent.PaymentID, data.Intent.MerchantID,
		models.PaymentEventLogTypeOperationHandled, map[string]string{
			"operation":      op.Name(),
			"next_operation": next.Name(),
			"status":         string(data.Intent.Status),
		})

	return buildResponse(data, next), nil
}

func (c *Core) shouldCallConnector(data *PaymentData) bool {
	if data.Confirm == nil || !*data.Confirm {
		return false
	}
	// Nothing to authorize with until an instrument has been attached.
	if data.PaymentMethodData == nil && data.Attempt.PaymentMethod == nil {
		return false
	}
	return !data.Intent.Status.Terminal()
}

func (c *Core) callConnector(ctx context.Context, data *PaymentData) error {
	conn, err := c.connectors.Get(data.Attempt.Connector)
	if err != nil {
		return err
	}

	result, err := conn.Authorize(ctx, &connector.AuthorizeRequest{
		PaymentID:          data.Intent.PaymentID,
		MerchantID:         data.Intent.MerchantID,
		TxnID:              data.Attempt.TxnID,
		Amount:             data.Amount,
		Currency:           data.Currency,
		PaymentMethod:      data.Attempt.PaymentMethod,
		CaptureMethod:      data.Attempt.CaptureMethod,
		AuthenticationType: data.Attempt.AuthenticationType,
		ReturnURL:          data.Intent.ReturnURL,
	})
	if err != nil {
		return err
	}

	// Carried on the in-memory aggregate only; durable result application is
	// out of this driver's hands.
	if data.ConnectorResponse != nil {
		data.ConnectorResponse.ConnectorTransactionID = &result.ConnectorTransactionID
	}

	c.events.Record(ctx, data.Intent.PaymentID, data.Intent.MerchantID,
		models.PaymentEventLogTypeConnectorInvoked, map[string]string{
			"connector":                data.Attempt.Connector,
			"connector_transaction_id": result.ConnectorTransactionID,
			"attempt_status":           string(result.Status),
		})
	return nil
}

func buildResponse(data *PaymentData, next Operation) *PaymentsResponse {
	resp := &PaymentsResponse{
		PaymentID:     data.Intent.PaymentID,
		MerchantID:    data.Intent.MerchantID,
		Status:        data.Intent.Status,
		Amount:        data.Intent.Amount,
		Currency:      data.Intent.Currency,
		ClientSecret:  data.Intent.ClientSecret,
		Description:   data.Intent.Description,
		ReturnURL:     data.Intent.ReturnURL,
		CustomerID:    data.Intent.CustomerID,
		MandateID:     data.MandateID,
		NextOperation: next.Name(),
		CreatedAt:     data.Intent.CreatedAt,
	}
	if data.Attempt != nil {
		resp.Connector = data.Attempt.Connector
	}
	if data.ConnectorResponse != nil {
		resp.ConnectorTransactionID = data.ConnectorResponse.ConnectorTransactionID
	}
	return resp
}
