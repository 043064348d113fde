// AngelaMos | 2026
// service.go

package analytics

import (
	"context"
	"fmt"

	"github.com/washtrack/washtrack/internal/core"
)

const (
	// maxRangeYears bounds report ranges so a single request cannot
	// aggregate the whole table history.
	maxRangeYears = 2

	recentOrderLimit = 10
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateQuery(q Query) error {
	if !q.Period.Valid() {
		return core.ValidationError(
			"period must be one of daily, weekly, monthly", nil,
		)
	}
	if q.Start != nil && q.End != nil {
		if q.Start.After(*q.End) {
			return core.ValidationError("startDate must not be after endDate", nil)
		}
		if q.Start.AddDate(maxRangeYears, 0, 0).Before(*q.End) {
			return core.ValidationError(
				fmt.Sprintf("date range must not exceed %d years", maxRangeYears), nil,
			)
		}
	}
	return nil
}

func (s *Service) BusinessReport(ctx context.Context, q Query) (*BusinessReport, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	buckets, err := s.repo.BusinessBuckets(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("business report: %w", err)
	}

	return &BusinessReport{
		Period:  string(q.Period),
		Buckets: buckets,
	}, nil
}

func (s *Service) ExpenseReport(ctx context.Context, q Query) (*ExpenseReport, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	buckets, err := s.repo.ExpenseBuckets(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("expense report: %w", err)
	}

	return &ExpenseReport{
		Period:  string(q.Period),
		Buckets: buckets,
	}, nil
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	byStatus, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	revenue, err := s.repo.Revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	unpaid, err := s.repo.UnpaidAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	expenseTotal, err := s.repo.ExpenseTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	recent, err := s.repo.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &Dashboard{
		OrdersByStatus: byStatus,
		Revenue:        revenue,
		UnpaidAmount:   unpaid,
		ExpenseTotal:   expenseTotal,
		RecentOrders:   recent,
	}, nil
}
