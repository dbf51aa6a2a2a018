package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"placefinder/internal/config"
	"placefinder/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	chatKeyPrefix = "placefinder:chat:"
	// maxStoredMessages bounds each user's list; reads never need more
	maxStoredMessages = 100
)

// RedisRepository stores conversation memory as one capped list per user
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client with pool and timeout defaults
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewRedisRepository creates a new Redis memory repository. A zero ttl keeps
// conversations forever.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

// Ping tests the Redis connection
func (r *RedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Append stores one conversation message for a user
func (r *RedisRepository) Append(ctx context.Context, userID, role, content string) error {
	payload, err := json.Marshal(model.Message{Role: role, Content: content, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	key := chatKeyPrefix + userID
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -maxStoredMessages, -1)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Recent returns the user's latest messages, oldest first
func (r *RedisRepository) Recent(ctx context.Context, userID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		return []model.Message{}, nil
	}

	raw, err := r.client.LRange(ctx, chatKeyPrefix+userID, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}

	messages := make([]model.Message, 0, len(raw))
	for _, entry := range raw {
		var m model.Message
		if err := json.Unmarshal([]byte(entry), &m); err != nil {
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}
