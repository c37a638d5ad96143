package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindAndCodeExtraction(t *testing.T) {
	err := Validation(CodeMissingRequiredField, "missing required field: amount")
	require.Equal(t, KindValidation, KindOf(err))
	require.Equal(t, CodeMissingRequiredField, CodeOf(err))

	wrapped := fmt.Errorf("handling request: %w", err)
	require.Equal(t, KindValidation, KindOf(wrapped))
	require.Equal(t, CodeMissingRequiredField, CodeOf(wrapped))

	plain := errors.New("boom")
	require.Equal(t, KindInternal, KindOf(plain))
	require.Equal(t, CodeInternalServerError, CodeOf(plain))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapInternal(cause, "failed to update payment intent")

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "failed to update payment intent")
	require.Contains(t, err.Error(), "connection refused")
}

func TestPublicMessage(t *testing.T) {
	require.Equal(t, "payment not found",
		PublicMessage(NotFound(CodePaymentNotFound, "payment not found")))
	require.Equal(t, "invalid currency",
		PublicMessage(Validation(CodeInvalidRequestData, "invalid currency")))

	// Internal and conflict details never leak to callers.
	require.Equal(t, "internal server error",
		PublicMessage(WrapInternal(errors.New("pq: deadlock detected"), "db write failed")))
	require.Equal(t, "internal server error",
		PublicMessage(Conflict(CodeDuplicateConnectorResponse, "duplicate connector response for transaction txn_1")))
	require.Equal(t, "internal server error", PublicMessage(errors.New("boom")))
}
