package memory

import (
	"context"
	"sync"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// ViolationLog é um log de violações em memória, útil para testes e desenvolvimento.
type ViolationLog struct {
	mu      sync.Mutex
	records []domain.Violation
}

var _ ports.ViolationLog = (*ViolationLog)(nil)

func NewViolationLog() *ViolationLog {
	return &ViolationLog{}
}

func (l *ViolationLog) Record(_ context.Context, violation domain.Violation) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, violation)
	return nil
}

func (l *ViolationLog) ListAll(_ context.Context) ([]domain.Violation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Violation, len(l.records))
	copy(out, l.records)
	return out, nil
}

func (l *ViolationLog) Close() error {
	return nil
}
