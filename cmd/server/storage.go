package main

import (
	"context"
	"fmt"
	"log"

	"github.com/JeanGrijp/alerting-system/internal/adapters/storage/memory"
	redisstorage "github.com/JeanGrijp/alerting-system/internal/adapters/storage/redis"
	sqlitestorage "github.com/JeanGrijp/alerting-system/internal/adapters/storage/sqlite"
	"github.com/JeanGrijp/alerting-system/internal/config"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

func initViolationLog(ctx context.Context, cfg config.StorageConfig) (ports.ViolationLog, func(), error) {
	switch cfg.Type {
	case config.StorageSQLite:
		storage, err := sqlitestorage.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				log.Printf("failed to close sqlite storage: %v", err)
			}
		}, nil
	case config.StorageRedis:
		storage, err := redisstorage.New(redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.ViolationsKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				log.Printf("failed to close redis storage: %v", err)
			}
		}, nil
	case config.StorageMemory:
		log.Println("using in-memory violation log: records are lost on restart")
		return memory.NewViolationLog(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
