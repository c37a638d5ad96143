package statistics

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/gateway/pkg/types"
)

// Statistic types exposed to the admin API
type StatisticType string

const (
	// Daily counts and processed volume
	StatisticTypeDailyPaymentCount  StatisticType = "daily_payment_count"
	StatisticTypeDailyVolume        StatisticType = "daily_volume"
	StatisticTypeStatusBreakdown    StatisticType = "status_breakdown"
	StatisticTypeConnectorBreakdown StatisticType = "connector_breakdown"
)

type PaymentStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type PaymentStatisticRequest struct {
	MerchantID string                      `json:"merchant_id"`
	Filters    []*types.CommonFilter       `json:"filters"`
	DataItems  []*PaymentStatisticDataItem `json:"data_items"`
}

// Build composes a WHERE clause from the request filters.
func (f *PaymentStatisticRequest) Build(builder clause.Builder) {
	if len(f.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		filter.Build(builder)
	}
}

type PaymentStatisticResponseDataItem struct {
	Date  string `json:"date,omitempty"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type PaymentStatisticResponse struct {
	DataItems map[StatisticType][]PaymentStatisticResponseDataItem `json:"data_items"`
}

// Service provides statistics operations over the payment tables.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) getDailyPaymentCount(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment_intent").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, count(*) as value").
		Where("merchant_id = ?", request.MerchantID).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyVolume(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment_intent").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, currency AS label, sum(amount) as value").
		Where("merchant_id = ?", request.MerchantID).
		Where("status = ?", types.IntentStatusSucceeded).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Group("currency").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getStatusBreakdown(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment_intent").
		Select("status AS label, count(*) as value").
		Where("merchant_id = ?", request.MerchantID).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("status")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getConnectorBreakdown(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table("payment_attempt").
		Select("connector AS label, count(*) as value").
		Where("merchant_id = ?", request.MerchantID).
		Group("connector")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getStatistic(ctx context.Context, id StatisticType, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	switch id {
	case StatisticTypeDailyPaymentCount:
		return s.getDailyPaymentCount(ctx, request)
	case StatisticTypeDailyVolume:
		return s.getDailyVolume(ctx, request)
	case StatisticTypeStatusBreakdown:
		return s.getStatusBreakdown(ctx, request)
	case StatisticTypeConnectorBreakdown:
		return s.getConnectorBreakdown(ctx, request)
	default:
		return nil, fmt.Errorf("unsupported statistic type: %s", id)
	}
}

// GetPaymentStatistics resolves every requested data item, fanning the
// independent queries out concurrently.
func (s *Service) GetPaymentStatistics(ctx context.Context, request *PaymentStatisticRequest) (*PaymentStatisticResponse, error) {
	if request == nil || request.MerchantID == "" {
		return nil, fmt.Errorf("merchant_id is required")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make(map[StatisticType][]PaymentStatisticResponseDataItem)

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(id StatisticType) {
			defer wg.Done()
			data, err := s.getStatistic(ctx, id, request)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to compute %s: %w", id, err)
				}
				return
			}
			results[id] = data
		}(item.ID)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &PaymentStatisticResponse{DataItems: results}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
