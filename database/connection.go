package database

import (
	"context"
	"fmt"
	"time"

	"insurance-chatbot-backend/config"
	"insurance-chatbot-backend/logger"
)

// Connect opens the record store selected by storage.type.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (Repository, error) {
	switch cfg.Storage.Type {
	case "memory":
		log.Info("Using in-memory storage", nil)
		return NewMemoryRepository(), nil
	case "mongodb":
		repo, err := ConnectMongoDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

// NewSessionStore opens the follow-up session store selected by sessions.type.
func NewSessionStore(ctx context.Context, cfg *config.Config, log logger.Logger) (SessionStore, error) {
	switch cfg.Sessions.Type {
	case "memory":
		return NewMemorySessionStore(cfg.Sessions.TTL), nil
	case "redis":
		store, err := NewRedisSessionStore(ctx, cfg.Sessions)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to Redis session store", map[string]interface{}{"address": cfg.Sessions.RedisAddress})
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Type)
	}
}

// HealthCheck performs a database health check
func HealthCheck(ctx context.Context, repo Repository) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return repo.Ping(ctx)
}
