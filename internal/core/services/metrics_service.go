package services

import (
	"context"
	"fmt"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// MetricsService expõe o histórico completo de violações, sem paginação.
type MetricsService struct {
	violations ports.ViolationLog
}

var _ ports.MetricsReader = (*MetricsService)(nil)

func NewMetricsService(violations ports.ViolationLog) (*MetricsService, error) {
	if violations == nil {
		return nil, fmt.Errorf("violation log is required")
	}
	return &MetricsService{violations: violations}, nil
}

func (s *MetricsService) GetAll(ctx context.Context) ([]domain.Violation, error) {
	records, err := s.violations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	if records == nil {
		records = []domain.Violation{}
	}
	return records, nil
}
