// Package domain concentra entidades e estruturas centrais do controle de admissão.
package domain

import "time"

// FixedWindowRule define quantas requisições um cliente pode fazer dentro de uma janela fixa.
type FixedWindowRule struct {
	Requests int
	Window   time.Duration
}

// ClientWindow é o estado da janela de um endereço: início e tentativas contadas.
type ClientWindow struct {
	Start time.Time
	Count int64
}

// Expired informa se a janela já não cobre now.
func (w ClientWindow) Expired(now time.Time, window time.Duration) bool {
	return w.Start.IsZero() || now.Sub(w.Start) >= window
}

// ResetAt é o instante em que a janela deixa de contar.
func (w ClientWindow) ResetAt(window time.Duration) time.Time {
	return w.Start.Add(window)
}

type Decision struct {
	Allowed      bool
	Identifier   string
	AppliedRule  FixedWindowRule
	CurrentCount int64
	ResetAfter   time.Duration
}

// Remaining retorna quantas requisições ainda cabem na janela atual.
func (d Decision) Remaining() int {
	remaining := int64(d.AppliedRule.Requests) - d.CurrentCount
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}

// ThrottleEvent é emitido a cada requisição negada.
type ThrottleEvent struct {
	IP    string
	At    time.Time
	Count int64
}
