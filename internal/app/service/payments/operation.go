package payments

import (
	"context"

	"go.uber.org/zap"

	"github.com/fatflowers/gateway/internal/models"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/tool"
	"github.com/fatflowers/gateway/pkg/types"
)

// State bundles the collaborators every operation call needs. It is threaded
// explicitly into each call; the core keeps no ambient singletons.
type State struct {
	Store     repository.Store
	Tracker   *repository.Tracker
	Addresses repository.AddressRepository
	IDGen     IDGenerator
	Log       *zap.SugaredLogger
}

// IDGenerator produces collision-resistant opaque identifiers.
type IDGenerator interface {
	Generate(prefix string) string
	GenerateClientSecret(paymentID string) string
}

type defaultIDGenerator struct{}

func (defaultIDGenerator) Generate(prefix string) string { return tool.GenerateIDWithPrefix(prefix) }

func (defaultIDGenerator) GenerateClientSecret(paymentID string) string {
	return tool.GenerateClientSecret(paymentID)
}

func NewIDGenerator() IDGenerator { return defaultIDGenerator{} }

// CustomerDetails is the side-channel extraction GetTracker hands to the
// customer-upsert collaborator; it is not part of the aggregate.
type CustomerDetails struct {
	CustomerID       *string
	Name             *string
	Email            *string
	Phone            *string
	PhoneCountryCode *string
}

// PaymentAddress carries the resolved shipping/billing pair.
type PaymentAddress struct {
	Shipping *models.Address
	Billing  *models.Address
}

// RefundSummary accumulates in the aggregate for later stages; refund
// processing itself happens elsewhere.
type RefundSummary struct {
	RefundID string
	Amount   int64
	Status   string
}

// PaymentData is the in-memory working record threaded between the Validate,
// GetTracker and UpdateTracker steps of one operation execution. The intent,
// attempt and response rows are owned by the store and only borrowed here for
// the request's lifetime.
type PaymentData struct {
	Intent            *models.PaymentIntent
	Attempt           *models.PaymentAttempt
	ConnectorResponse *models.ConnectorResponse
	Amount            int64
	Currency          types.Currency
	MandateID         *string
	SetupMandate      *MandateData
	Token             *string
	Address           PaymentAddress
	Confirm           *bool
	PaymentMethodData *PaymentMethodData
	Refunds           []RefundSummary
	ForceSync         *bool
}

// ValidateResult is what ValidateRequest resolves from a raw request.
type ValidateResult struct {
	NextOperation Operation
	MerchantID    string
	PaymentID     PaymentIDType
	MandateType   *types.MandateTxnType
}

// TrackerResult is what GetTracker assembles from persisted state.
type TrackerResult struct {
	NextOperation Operation
	Payment       *PaymentData
	Customer      *CustomerDetails
}

// Operation is the polymorphic workflow unit for one lifecycle action. The
// pipeline driver holds an Operation value and never needs to know the
// concrete variant; each step hands back the operation that should run next,
// possibly on a subsequent request.
type Operation interface {
	Name() string

	// ValidateRequest performs shape and business-rule checks and resolves the
	// merchant id, payment id reference and mandate classification.
	ValidateRequest(ctx context.Context, state *State, req *PaymentsRequest, merchant *models.MerchantAccount) (*ValidateResult, error)

	// GetTracker creates or resumes the persisted records and assembles the
	// aggregate that flows through the rest of the request.
	GetTracker(ctx context.Context, state *State, paymentID PaymentIDType, merchantID, connectorName string, req *PaymentsRequest, mandateType *types.MandateTxnType) (*TrackerResult, error)

	// UpdateTracker advances and persists the intent status and selects the
	// operation for the next step.
	UpdateTracker(ctx context.Context, state *State, data *PaymentData) (Operation, *PaymentData, error)
}

// operationForStatus maps a persisted intent status to the operation that
// should handle the next request for that payment:
//
//	RequiresPaymentMethod -> PaymentCreate (resubmission completes creation input)
//	RequiresConfirmation  -> PaymentConfirm
//	anything else         -> PaymentStatus (sync; terminal states just report)
func operationForStatus(status types.IntentStatus) Operation {
	switch status {
	case types.IntentStatusRequiresPaymentMethod:
		return PaymentCreate{}
	case types.IntentStatusRequiresConfirmation:
		return PaymentConfirm{}
	default:
		return PaymentStatus{}
	}
}

// ifNotCreateChangeOperation keeps the current operation for a fresh create
// and routes a resumed payment to whatever action continues it.
func ifNotCreateChangeOperation(resumed bool, status types.IntentStatus, current Operation) Operation {
	if !resumed {
		return current
	}
	return operationForStatus(status)
}

// isConfirm hands control to the confirm operation when the request asked for
// confirmation up front.
func isConfirm(current Operation, confirm *bool) Operation {
	if confirm != nil && *confirm {
		return PaymentConfirm{}
	}
	return current
}
