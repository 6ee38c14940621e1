package notifier

import (
	"context"
	"log"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// LogNotifier escreve o alerta no log. Usado quando não há relay SMTP configurado.
type LogNotifier struct {
	logger *log.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg domain.AlertMessage) error {
	n.logger.Printf("[ALERT] to=%q subject=%q body=%q", msg.To, msg.Subject, msg.Body)
	return nil
}
