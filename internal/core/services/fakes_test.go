package services

import (
	"context"
	"sync"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
)

type fakeViolationLog struct {
	mu      sync.Mutex
	records []domain.Violation
	err     error
}

func (f *fakeViolationLog) Record(ctx context.Context, v domain.Violation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, v)
	return nil
}

func (f *fakeViolationLog) ListAll(_ context.Context) ([]domain.Violation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Violation(nil), f.records...), nil
}

func (f *fakeViolationLog) snapshot() []domain.Violation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Violation(nil), f.records...)
}

// fakeNotifier records every message and reports it on sent when the channel is set.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []domain.AlertMessage
	err      error
	sent     chan domain.AlertMessage
	block    chan struct{}
}

func (f *fakeNotifier) Notify(ctx context.Context, msg domain.AlertMessage) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	f.messages = append(f.messages, msg)
	err := f.err
	f.mu.Unlock()
	if f.sent != nil {
		f.sent <- msg
	}
	return err
}

func (f *fakeNotifier) snapshot() []domain.AlertMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AlertMessage(nil), f.messages...)
}
