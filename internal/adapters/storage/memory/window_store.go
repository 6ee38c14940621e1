// Package memory disponibiliza storages em memória do processo.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

// WindowStore guarda as janelas fixas por chave. Um único mutex serializa
// o incremento-e-leitura, então duas requisições nunca veem o mesmo contador.
//
// O estado se perde no restart e não é compartilhado entre instâncias.
type WindowStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	window    domain.ClientWindow
	expiresAt time.Time
}

var _ ports.WindowStore = (*WindowStore)(nil)

func NewWindowStore() *WindowStore {
	return &WindowStore{entries: make(map[string]*windowEntry)}
}

func (s *WindowStore) Increment(_ context.Context, key string, now time.Time, window time.Duration) (domain.ClientWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || ent.window.Expired(now, window) {
		ent = &windowEntry{window: domain.ClientWindow{Start: now}, expiresAt: now.Add(window)}
		s.entries[key] = ent
	}
	ent.window.Count++
	return ent.window, nil
}

// Sweep remove janelas já expiradas em now e retorna quantas saíram.
func (s *WindowStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, ent := range s.entries {
		if !now.Before(ent.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *WindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor inicia uma goroutine que limpa janelas expiradas periodicamente.
// Pare cancelando o contexto.
func (s *WindowStore) StartJanitor(ctx context.Context, every time.Duration, clock domain.Clock) {
	if every <= 0 {
		return
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep(clock.Now())
			}
		}
	}()
}
