// Package redis disponibiliza o log de violações baseado em uma lista Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const DefaultKey = "alerting_system:failed_requests"

// ViolationLog anexa cada violação ao fim de uma lista (RPUSH), preservando a ordem de chegada.
type ViolationLog struct {
	client *redis.Client
	key    string
}

var _ ports.ViolationLog = (*ViolationLog)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func New(cfg Config) (*ViolationLog, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, cfg.Key), nil
}

// NewWithClient reaproveita um client já configurado.
func NewWithClient(client *redis.Client, key string) *ViolationLog {
	if key == "" {
		key = DefaultKey
	}
	return &ViolationLog{client: client, key: key}
}

func (l *ViolationLog) Close() error {
	return l.client.Close()
}

func (l *ViolationLog) Record(ctx context.Context, violation domain.Violation) error {
	payload, err := encodeViolation(violation)
	if err != nil {
		return err
	}
	if err := l.client.RPush(ctx, l.key, payload).Err(); err != nil {
		return &domain.StorageError{Op: "rpush violation", Err: err}
	}
	return nil
}

func (l *ViolationLog) ListAll(ctx context.Context) ([]domain.Violation, error) {
	items, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, &domain.StorageError{Op: "lrange violations", Err: err}
	}
	return decodeViolations(items)
}

func encodeViolation(violation domain.Violation) ([]byte, error) {
	payload, err := json.Marshal(violation)
	if err != nil {
		return nil, fmt.Errorf("encode violation: %w", err)
	}
	return payload, nil
}

func decodeViolations(items []string) ([]domain.Violation, error) {
	violations := make([]domain.Violation, 0, len(items))
	for i, item := range items {
		var v domain.Violation
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			return nil, &domain.StorageError{Op: fmt.Sprintf("decode violation %d", i), Err: err}
		}
		violations = append(violations, v)
	}
	return violations, nil
}
