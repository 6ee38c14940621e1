package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// Config agrega a regra de janela fixa e as dependências opcionais do serviço.
type Config struct {
	Rule     domain.FixedWindowRule
	Clock    domain.Clock
	Observer ports.ThrottleObserver
}

// RateLimiterService implementa o controle de admissão por endereço de cliente.
type RateLimiterService struct {
	store    ports.WindowStore
	rule     domain.FixedWindowRule
	clock    domain.Clock
	observer ports.ThrottleObserver
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço.
func NewRateLimiterService(store ports.WindowStore, cfg Config) (*RateLimiterService, error) {
	if store == nil {
		return nil, fmt.Errorf("window store is required")
	}
	if cfg.Rule.Requests <= 0 || cfg.Rule.Window <= 0 {
		return nil, fmt.Errorf("fixed window rule must have positive values")
	}
	if cfg.Clock == nil {
		cfg.Clock = domain.SystemClock{}
	}

	return &RateLimiterService{
		store:    store,
		rule:     cfg.Rule,
		clock:    cfg.Clock,
		observer: cfg.Observer,
	}, nil
}

// Allow conta a tentativa na janela do endereço e decide entre admitir e negar.
// Toda negação retorna domain.ErrBlocked e notifica o observer uma única vez.
func (s *RateLimiterService) Allow(ctx context.Context, ip string) (domain.Decision, error) {
	identifier := normalizeIdentifier(ip)
	if identifier == "" {
		return domain.Decision{}, fmt.Errorf("ip address is required")
	}

	now := s.clock.Now()
	window, err := s.store.Increment(ctx, buildKey(identifier), now, s.rule.Window)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("increment window for %s: %w", identifier, err)
	}

	decision := domain.Decision{
		Allowed:      true,
		Identifier:   identifier,
		AppliedRule:  s.rule,
		CurrentCount: window.Count,
		ResetAfter:   window.ResetAt(s.rule.Window).Sub(now),
	}

	if window.Count <= int64(s.rule.Requests) {
		return decision, nil
	}

	decision.Allowed = false
	if s.observer != nil {
		s.observer.OnThrottle(ctx, domain.ThrottleEvent{
			IP:    identifier,
			At:    now,
			Count: window.Count,
		})
	}
	return decision, domain.ErrBlocked
}

func normalizeIdentifier(ip string) string {
	return strings.ToLower(strings.TrimSpace(ip))
}

func buildKey(identifier string) string {
	return fmt.Sprintf("ratelimit:ip:%s", identifier)
}
