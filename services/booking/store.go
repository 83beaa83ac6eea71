package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agentlinker/models"

	"github.com/go-redis/redis/v8"
)

// Draft sessions expire after 30 minutes of inactivity; each save renews
// the TTL.
const sessionTTL = 30 * time.Minute

const sessionKeyPrefix = "draft:"

// SessionStore holds in-flight booking drafts between flow steps.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Save(ctx context.Context, draft *models.BookingDraft) error
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore keeps drafts as JSON blobs in the session cache.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore constructs a SessionStore over the given client.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}

	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &draft, nil
}

func (s *redisSessionStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+draft.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}
