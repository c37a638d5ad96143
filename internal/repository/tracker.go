package repository

import (
	"context"
	"errors"

	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/internal/models"
)

// Tracker resolves concurrent duplicate submissions against the
// (payment_id, merchant_id) unique key into resume-existing outcomes. It is
// the sole mechanism giving exactly-once creation semantics; it relies on the
// store enforcing uniqueness atomically and surfacing ErrUniqueViolation.
type Tracker struct {
	store Store
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// CreateOrResumeResult carries the persisted trio plus whether either insert
// resolved via the violation-then-fetch path.
type CreateOrResumeResult struct {
	Intent   *models.PaymentIntent
	Attempt  *models.PaymentAttempt
	Response *models.ConnectorResponse
	Resumed  bool
}

// CreateOrResume inserts the attempt, intent and connector-response drafts,
// treating a unique violation on attempt or intent as "another request already
// created this payment": the existing row is fetched and the whole call is
// classified as a resume. The attempt goes first; its transaction id must
// exist before a connector response can be attached. A unique violation on
// the connector response is never a resume signal: transaction ids are
// generated fresh and must not collide.
func (t *Tracker) CreateOrResume(ctx context.Context, intentDraft *models.PaymentIntent, attemptDraft *models.PaymentAttempt) (*CreateOrResumeResult, error) {
	res := &CreateOrResumeResult{}

	attempt, attemptResumed, err := t.insertOrFetchAttempt(ctx, attemptDraft)
	if err != nil {
		return nil, err
	}
	res.Attempt = attempt
	res.Resumed = attemptResumed

	intent, intentResumed, err := t.insertOrFetchIntent(ctx, intentDraft)
	if err != nil {
		return nil, err
	}
	res.Intent = intent
	res.Resumed = res.Resumed || intentResumed

	resp, err := t.attachConnectorResponse(ctx, attempt, attemptResumed)
	if err != nil {
		return nil, err
	}
	res.Response = resp

	return res, nil
}

func (t *Tracker) insertOrFetchAttempt(ctx context.Context, draft *models.PaymentAttempt) (*models.PaymentAttempt, bool, error) {
	err := t.store.InsertPaymentAttempt(ctx, draft)
	if err == nil {
		return draft, false, nil
	}
	if !errors.Is(err, ErrUniqueViolation) {
		return nil, false, errs.WrapInternal(err, "failed to insert payment attempt")
	}
	existing, ferr := t.store.FindPaymentAttemptByPaymentIDMerchantID(ctx, draft.PaymentID, draft.MerchantID)
	if ferr != nil {
		if errors.Is(ferr, ErrNotFound) {
			return nil, false, errs.NotFound(errs.CodePaymentNotFound, "payment not found")
		}
		return nil, false, errs.WrapInternal(ferr, "failed to fetch existing payment attempt")
	}
	return existing, true, nil
}

func (t *Tracker) insertOrFetchIntent(ctx context.Context, draft *models.PaymentIntent) (*models.PaymentIntent, bool, error) {
	err := t.store.InsertPaymentIntent(ctx, draft)
	if err == nil {
		return draft, false, nil
	}
	if !errors.Is(err, ErrUniqueViolation) {
		return nil, false, errs.WrapInternal(err, "failed to insert payment intent")
	}
	existing, ferr := t.store.FindPaymentIntentByPaymentIDMerchantID(ctx, draft.PaymentID, draft.MerchantID)
	if ferr != nil {
		if errors.Is(ferr, ErrNotFound) {
			return nil, false, errs.NotFound(errs.CodePaymentNotFound, "payment not found")
		}
		return nil, false, errs.WrapInternal(ferr, "failed to fetch existing payment intent")
	}
	return existing, true, nil
}

// attachConnectorResponse creates the response row for a freshly inserted
// attempt. For a resumed attempt the row created by the first creator is
// borrowed instead; if the first creator died between its attempt insert and
// response insert, the row is created now, keyed by the surviving attempt's
// transaction id. Either insert path treats a unique violation as fatal.
func (t *Tracker) attachConnectorResponse(ctx context.Context, attempt *models.PaymentAttempt, attemptResumed bool) (*models.ConnectorResponse, error) {
	if attemptResumed {
		existing, err := t.store.FindConnectorResponseByTxnID(ctx, attempt.PaymentID, attempt.MerchantID, attempt.TxnID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, errs.WrapInternal(err, "failed to fetch connector response")
		}
	}
	draft := makeConnectorResponse(attempt)
	if err := t.store.InsertConnectorResponse(ctx, draft); err != nil {
		if errors.Is(err, ErrUniqueViolation) {
			return nil, errs.Wrap(err, errs.KindConflict, errs.CodeDuplicateConnectorResponse,
				"duplicate connector response for transaction "+attempt.TxnID)
		}
		return nil, errs.WrapInternal(err, "failed to insert connector response")
	}
	return draft, nil
}

func makeConnectorResponse(attempt *models.PaymentAttempt) *models.ConnectorResponse {
	return &models.ConnectorResponse{
		PaymentID:     attempt.PaymentID,
		MerchantID:    attempt.MerchantID,
		TxnID:         attempt.TxnID,
		ConnectorName: attempt.Connector,
	}
}
