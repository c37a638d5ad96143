package statistics

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

func TestPaymentStatisticRequest_BuildEmptyFilters(t *testing.T) {
	b := &exprBuilder{}
	(&PaymentStatisticRequest{}).Build(b)
	require.Equal(t, "1=1", b.String())
}

func TestPaymentStatisticRequest_BuildJoinsFilters(t *testing.T) {
	b := &exprBuilder{}
	req := &PaymentStatisticRequest{Filters: []*types.CommonFilter{
		{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"succeeded"}},
		{Field: "currency", Operator: types.CommonFilterOperatorEq, Values: []any{"USD"}},
	}}
	req.Build(b)

	sql := b.String()
	require.Contains(t, sql, "status = ?")
	require.Contains(t, sql, "currency = ?")
	require.Contains(t, sql, " AND ")
	require.Equal(t, []any{"succeeded", "USD"}, b.vars)
}

func TestGetPaymentStatistics_RequiresMerchant(t *testing.T) {
	s := New(dryRunDB(t))

	_, err := s.GetPaymentStatistics(context.Background(), nil)
	require.Error(t, err)

	_, err = s.GetPaymentStatistics(context.Background(), &PaymentStatisticRequest{})
	require.Error(t, err)
}

func TestGetPaymentStatistics_UnsupportedType(t *testing.T) {
	s := New(dryRunDB(t))

	_, err := s.GetPaymentStatistics(context.Background(), &PaymentStatisticRequest{
		MerchantID: "merchant_abc",
		DataItems:  []*PaymentStatisticDataItem{{ID: "weekly_refund_rate"}},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported statistic type")
}

func TestGetPaymentStatistics_ResolvesEveryItem(t *testing.T) {
	s := New(dryRunDB(t))

	res, err := s.GetPaymentStatistics(context.Background(), &PaymentStatisticRequest{
		MerchantID: "merchant_abc",
		DataItems: []*PaymentStatisticDataItem{
			{ID: StatisticTypeDailyPaymentCount},
			{ID: StatisticTypeDailyVolume},
			{ID: StatisticTypeStatusBreakdown},
			{ID: StatisticTypeConnectorBreakdown},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.DataItems, 4)
}
