package domain

import (
	"fmt"
	"time"
)

const ReasonRateLimitExceeded = "Rate limit exceeded"

// Violation é o registro imutável de um cliente bloqueado pelo rate limiter.
type Violation struct {
	ID        string    `json:"id"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

func NewRateLimitViolation(id, ip string, at time.Time) Violation {
	return Violation{
		ID:        id,
		IP:        ip,
		Timestamp: at.UTC(),
		Reason:    ReasonRateLimitExceeded,
	}
}

// AlertMessage é montada por violação, entregue ao notifier e descartada.
type AlertMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}

func NewRateLimitAlert(from, to, ip string) AlertMessage {
	return AlertMessage{
		From:    from,
		To:      to,
		Subject: "Alert: Rate Limit Exceeded",
		Body:    fmt.Sprintf("Rate limit exceeded for IP: %s", ip),
	}
}
