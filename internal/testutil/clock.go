package testutil

import (
	"sync"
	"time"
)

// FakeClock é um relógio controlável para testes.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock cria um FakeClock parado em start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance avança o relógio em d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
