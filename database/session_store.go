package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"insurance-chatbot-backend/config"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/followup"
)

// SessionStore keeps the in-progress follow-up flow of each chat session between messages.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*followup.State, error)
	Save(ctx context.Context, sessionID string, state followup.State) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type memoryEntry struct {
	state     followup.State
	expiresAt time.Time
}

// MemorySessionStore is a mutex-guarded map with per-entry expiry.
type MemorySessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns nil when the session has no active flow.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*followup.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, nil
	}
	state := entry.state
	state.Values = append([]string(nil), entry.state.Values...)
	return &state, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, state followup.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.Values = append([]string(nil), state.Values...)
	s.entries[sessionID] = memoryEntry{state: state, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Count reports live sessions, dropping expired ones on the way.
func (s *MemorySessionStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	return len(s.entries), nil
}

func (s *MemorySessionStore) Close() error {
	return nil
}

const sessionKeyPrefix = "chatbot:session:"

// RedisSessionStore stores each flow state as JSON under a key that expires after the TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates the client and pings the server once.
func NewRedisSessionStore(ctx context.Context, cfg config.SessionConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddress,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.NewSessionStoreError("ping", fmt.Errorf("redis ping failed: %w", err))
	}

	return &RedisSessionStore{client: client, ttl: cfg.TTL}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*followup.State, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreError("get", err)
	}

	var state followup.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, apperrors.NewSessionStoreError("decode", err)
	}
	return &state, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, state followup.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return apperrors.NewSessionStoreError("encode", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreError("set", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return apperrors.NewSessionStoreError("delete", err)
	}
	return nil
}

func (s *RedisSessionStore) Count(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, apperrors.NewSessionStoreError("scan", err)
	}
	return count, nil
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
