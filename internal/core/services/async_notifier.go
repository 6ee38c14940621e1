package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const (
	defaultSendTimeout = 15 * time.Second
	defaultMaxInFlight = 32
)

// AsyncNotifierOptions controla o ritmo e o tempo máximo de cada envio.
//
// RatePerSecond <= 0 desliga o pacing. MaxInFlight limita quantos alertas podem
// estar aguardando ou enviando ao mesmo tempo; o excedente é descartado.
type AsyncNotifierOptions struct {
	RatePerSecond float64
	Burst         int
	SendTimeout   time.Duration
	MaxInFlight   int
}

// AsyncNotifier entrega alertas em segundo plano: Notify só agenda o envio e retorna.
// Cada alerta é tentado uma vez; falhas são logadas e descartadas.
type AsyncNotifier struct {
	next    ports.Notifier
	limiter *rate.Limiter
	timeout time.Duration
	slots   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.Notifier = (*AsyncNotifier)(nil)

func NewAsyncNotifier(next ports.Notifier, opts AsyncNotifierOptions) (*AsyncNotifier, error) {
	if next == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = defaultMaxInFlight
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		if opts.Burst <= 0 {
			opts.Burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncNotifier{
		next:    next,
		limiter: limiter,
		timeout: opts.SendTimeout,
		slots:   make(chan struct{}, opts.MaxInFlight),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Notify agenda o envio e nunca espera pela entrega.
// Com todos os slots ocupados o alerta é descartado e Notify retorna domain.ErrAlertDropped.
func (n *AsyncNotifier) Notify(_ context.Context, msg domain.AlertMessage) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return domain.ErrNotifierClosed
	}

	select {
	case n.slots <- struct{}{}:
	default:
		return domain.ErrAlertDropped
	}

	n.wg.Add(1)
	go n.deliver(msg)
	return nil
}

func (n *AsyncNotifier) deliver(msg domain.AlertMessage) {
	defer n.wg.Done()
	defer func() { <-n.slots }()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic while sending alert to %s: %v", msg.To, r)
		}
	}()

	if n.limiter != nil {
		if err := n.limiter.Wait(n.ctx); err != nil {
			log.Printf("alert to %s dropped before sending: %v", msg.To, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(n.ctx, n.timeout)
	defer cancel()

	if err := n.next.Notify(ctx, msg); err != nil {
		log.Printf("Error sending email: %v", err)
		return
	}
	log.Printf("Email sent: %s -> %s", msg.Subject, msg.To)
}

// Close recusa novos alertas e espera os envios em andamento.
// Se ctx terminar antes, os envios pendentes são cancelados.
func (n *AsyncNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		n.cancel()
		return nil
	case <-ctx.Done():
		n.cancel()
		<-done
		return ctx.Err()
	}
}
