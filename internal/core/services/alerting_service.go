package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const defaultRecordTimeout = 5 * time.Second

// AlertingConfig define remetente, destinatário e limites de tempo dos efeitos colaterais.
type AlertingConfig struct {
	From          string
	To            string
	RecordTimeout time.Duration
	NewID         func() string
}

// AlertingService registra cada negação no log de violações e dispara o alerta por email.
// Falhas são apenas logadas: a resposta 429 já foi decidida.
type AlertingService struct {
	violations ports.ViolationLog
	notifier   ports.Notifier
	cfg        AlertingConfig
}

var _ ports.ThrottleObserver = (*AlertingService)(nil)

func NewAlertingService(violations ports.ViolationLog, notifier ports.Notifier, cfg AlertingConfig) (*AlertingService, error) {
	if violations == nil {
		return nil, fmt.Errorf("violation log is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if cfg.RecordTimeout <= 0 {
		cfg.RecordTimeout = defaultRecordTimeout
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &AlertingService{violations: violations, notifier: notifier, cfg: cfg}, nil
}

func (s *AlertingService) OnThrottle(ctx context.Context, event domain.ThrottleEvent) {
	violation := domain.NewRateLimitViolation(s.cfg.NewID(), event.IP, event.At)

	// O cliente pode desconectar logo após o 429; o registro precisa ser gravado mesmo assim.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RecordTimeout)
	if err := s.violations.Record(recordCtx, violation); err != nil {
		log.Printf("failed to record violation for %s: %v", event.IP, err)
	}
	cancel()

	msg := domain.NewRateLimitAlert(s.cfg.From, s.cfg.To, event.IP)
	if err := s.notifier.Notify(ctx, msg); err != nil {
		log.Printf("failed to dispatch alert for %s: %v", event.IP, err)
	}
}
