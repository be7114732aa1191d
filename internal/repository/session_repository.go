// Package repository provides the persistence layer.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bankbot-go/internal/model"

	"github.com/go-redis/redis/v8"
)

// SessionRepository stores the list of past chat sessions. The list is read
// and written wholesale: callers always see and replace the entire list.
type SessionRepository interface {
	LoadAll(ctx context.Context) ([]model.ChatSession, error)
	SaveAll(ctx context.Context, sessions []model.ChatSession) error
}

// sessionList is the stored envelope, kept compatible with the historical
// chat_history.json shape.
type sessionList struct {
	Sessions []model.ChatSession `json:"sessions"`
}

type redisSessionRepository struct {
	redisClient *redis.Client
	key         string
}

// NewRedisSessionRepository creates a SessionRepository backed by a single
// Redis key.
func NewRedisSessionRepository(redisClient *redis.Client, key string) SessionRepository {
	if key == "" {
		key = "bankbot:sessions"
	}
	return &redisSessionRepository{redisClient: redisClient, key: key}
}

func (r *redisSessionRepository) LoadAll(ctx context.Context) ([]model.ChatSession, error) {
	jsonData, err := r.redisClient.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return []model.ChatSession{}, nil // nothing stored yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session list: %w", err)
	}
	var stored sessionList
	if err := json.Unmarshal([]byte(jsonData), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session list: %w", err)
	}
	return stored.Sessions, nil
}

func (r *redisSessionRepository) SaveAll(ctx context.Context, sessions []model.ChatSession) error {
	jsonData, err := json.Marshal(sessionList{Sessions: sessions})
	if err != nil {
		return fmt.Errorf("failed to marshal session list: %w", err)
	}
	if err := r.redisClient.Set(ctx, r.key, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session list: %w", err)
	}
	return nil
}
