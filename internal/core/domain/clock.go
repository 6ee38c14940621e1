package domain

import "time"

// Clock fornece o horário atual ao controle de admissão.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
