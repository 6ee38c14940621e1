// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
)

type RateLimiter interface {
	Allow(ctx context.Context, ip string) (domain.Decision, error)
}

// ThrottleObserver recebe os efeitos colaterais de uma negação (registro + alerta).
type ThrottleObserver interface {
	OnThrottle(ctx context.Context, event domain.ThrottleEvent)
}

type AccessValidator interface {
	Validate(token string) bool
}

type MetricsReader interface {
	GetAll(ctx context.Context) ([]domain.Violation, error)
}
