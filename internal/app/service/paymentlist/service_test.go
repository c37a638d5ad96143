package paymentlist

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/utils/tests"

	"github.com/fatflowers/gateway/pkg/types"
)

// exprBuilder collects the SQL text and bind variables an expression writes.
type exprBuilder struct {
	bytes.Buffer
	vars []any
}

func (b *exprBuilder) WriteQuoted(field interface{}) {
	switch v := field.(type) {
	case clause.Column:
		b.WriteString(v.Name)
	case string:
		b.WriteString(v)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func (b *exprBuilder) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			_, _ = writer.WriteString(",")
		}
		_ = writer.WriteByte('?')
		b.vars = append(b.vars, v)
	}
}

func (b *exprBuilder) AddError(err error) error { return err }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestFiltersAnd_EmptyMatchesAll(t *testing.T) {
	b := &exprBuilder{}
	filtersAnd{}.Build(b)
	require.Equal(t, "1=1", b.String())
	require.Empty(t, b.vars)
}

func TestFiltersAnd_RendersConjunction(t *testing.T) {
	b := &exprBuilder{}
	filtersAnd{filters: []*types.CommonFilter{
		{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"processing"}},
		{Field: "amount", Operator: types.CommonFilterOperatorGte, Values: []any{int64(1000)}},
	}}.Build(b)

	sql := b.String()
	require.Contains(t, sql, "status = ?")
	require.Contains(t, sql, "amount >= ?")
	require.Contains(t, sql, " AND ")
	require.Equal(t, []any{"processing", int64(1000)}, b.vars)
}

func TestScanPayments_NilRequest(t *testing.T) {
	s := New(dryRunDB(t))
	_, err := s.ScanPayments(context.Background(), nil)
	require.Error(t, err)
}

func TestScanPayments_AppliesDefaults(t *testing.T) {
	s := New(dryRunDB(t))

	req := &ScanPaymentsRequest{
		From: -5,
		Filters: []*types.CommonFilter{
			{Field: "merchant_id", Operator: types.CommonFilterOperatorEq, Values: []any{"merchant_abc"}},
		},
	}
	res, err := s.ScanPayments(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, 10, req.Size)
	require.Equal(t, 0, req.From)
	require.Equal(t, "created_at", req.SortBy)
}
