package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ikkim/shopit-client/config"
	"github.com/ikkim/shopit-client/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Persister serializes the session on every write and restores it at
// startup. Exactly one namespaced entry is used.
type Persister interface {
	Save(session Session) error
	Load() (Session, bool, error)
	Clear() error
}

// sessionKey is the single namespaced entry holding the serialized session.
const sessionKey = "shopit:session"

// FilePersister keeps the session as a JSON file on local disk.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Save(session Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (p *FilePersister) Load() (Session, bool, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file means anonymous, not a crash loop.
		logger.Warn("Discarding unreadable session file", map[string]interface{}{
			"path":  p.path,
			"error": err.Error(),
		})
		return Session{}, false, nil
	}
	return session, true, nil
}

func (p *FilePersister) Clear() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// RedisPersister keeps the session in Redis, for kiosk-style deployments
// where several client processes on one host share a login.
type RedisPersister struct {
	client *redis.Client
}

// NewRedisPersister connects to Redis and verifies the connection.
func NewRedisPersister(cfg *config.RedisConfig) (*RedisPersister, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis session store connected", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
	})
	return &RedisPersister{client: client}, nil
}

func (p *RedisPersister) Save(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.client.Set(ctx, sessionKey, data, 0).Err()
}

func (p *RedisPersister) Load() (Session, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := p.client.Get(ctx, sessionKey).Bytes()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, false, nil
	}
	return session, true, nil
}

func (p *RedisPersister) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.client.Del(ctx, sessionKey).Err()
}

// Close releases the Redis connection.
func (p *RedisPersister) Close() error {
	return p.client.Close()
}
