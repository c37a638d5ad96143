// Package connector defines the downstream processor collaborator the
// pipeline driver invokes between GetTracker and UpdateTracker. Concrete
// adapters (card networks, banks, wallets) live behind this seam; the package
// ships only the registry and a dummy connector for development and tests.
package connector

import (
	"context"
	"fmt"

	"github.com/fatflowers/gateway/pkg/tool"
	"github.com/fatflowers/gateway/pkg/types"
)

// AuthorizeRequest is the connector-agnostic slice of the payment aggregate a
// connector needs to authorize a charge.
type AuthorizeRequest struct {
	PaymentID          string
	MerchantID         string
	TxnID              string
	Amount             int64
	Currency           types.Currency
	PaymentMethod      *types.PaymentMethodType
	CaptureMethod      *types.CaptureMethod
	AuthenticationType *types.AuthenticationType
	ReturnURL          *string
}

// AuthorizeResult carries the connector's correlation id and coarse outcome.
type AuthorizeResult struct {
	ConnectorTransactionID string
	Status                 types.AttemptStatus
	RawResponse            []byte
}

type Connector interface {
	Name() string
	Authorize(ctx context.Context, req *AuthorizeRequest) (*AuthorizeResult, error)
}

// Registry holds the configured connectors by name.
type Registry struct {
	connectors map[string]Connector
}

func NewRegistry(connectors ...Connector) *Registry {
	r := &Registry{connectors: make(map[string]Connector, len(connectors))}
	for _, c := range connectors {
		r.connectors[c.Name()] = c
	}
	return r
}

func (r *Registry) Get(name string) (Connector, error) {
	c, ok := r.connectors[name]
	if !ok {
		return nil, fmt.Errorf("unsupported connector: %s", name)
	}
	return c, nil
}

// Dummy authorizes everything and fabricates a correlation id. It exists so
// the driver seam is exercisable without network credentials.
type Dummy struct{}

func (Dummy) Name() string { return "dummy" }

func (Dummy) Authorize(_ context.Context, req *AuthorizeRequest) (*AuthorizeResult, error) {
	return &AuthorizeResult{
		ConnectorTransactionID: tool.GenerateIDWithPrefix("dummy"),
		Status:                 types.AttemptStatusPending,
		RawResponse:            []byte(fmt.Sprintf(`{"amount":%d,"currency":%q}`, req.Amount, req.Currency)),
	}, nil
}
