package ports

import (
	"context"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
)

type Notifier interface {
	Notify(ctx context.Context, msg domain.AlertMessage) error
}
