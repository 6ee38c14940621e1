// Package notifier disponibiliza as implementações de entrega de alertas.
package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const DefaultSMTPHost = "smtp.gmail.com"

type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	InsecureSkipVerify bool
	DialTimeout        time.Duration
}

// SMTPNotifier envia o alerta pelo relay SMTP configurado, uma conexão por mensagem.
type SMTPNotifier struct {
	client *mail.Client
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultSMTPHost
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(cfg.DialTimeout),
		mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPNotifier{client: client}, nil
}

func (n *SMTPNotifier) Notify(ctx context.Context, msg domain.AlertMessage) error {
	m, err := buildMessage(msg)
	if err != nil {
		return &domain.NotifyError{Recipient: msg.To, Err: err}
	}
	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return &domain.NotifyError{Recipient: msg.To, Err: err}
	}
	return nil
}

func buildMessage(msg domain.AlertMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}
