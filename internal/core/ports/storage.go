// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
)

// WindowStore guarda a janela fixa de cada chave. Increment precisa ser atômico por chave:
// abre uma janela nova quando não existe ou expirou, senão incrementa o contador.
type WindowStore interface {
	Increment(ctx context.Context, key string, now time.Time, window time.Duration) (domain.ClientWindow, error)
}

type ViolationLog interface {
	Record(ctx context.Context, violation domain.Violation) error
	ListAll(ctx context.Context) ([]domain.Violation, error)
}
