package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

// RedisDraftStore is the durable draft tier. Values are JSON strings with a
// TTL so abandoned drafts eventually expire on their own.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore constructs the durable tier.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisDraftStore{client: client, ttl: ttl}
}

// LoadDraft reads and unmarshals the stored draft. Event dates round-trip as
// ISO strings inside the JSON payload and come back as time.Time.
func (s *RedisDraftStore) LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error) {
	if s.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	raw, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get draft %s: %w", sessionID, err)
	}
	draft, err := unmarshalDraft(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", sessionID, err)
	}
	return draft, nil
}

// SaveDraft marshals and stores the draft with the configured TTL.
func (s *RedisDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	if s.client == nil {
		return nil
	}
	payload, err := marshalDraft(draft)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", draft.SessionID, err)
	}
	if err := s.client.Set(ctx, draftKey(draft.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", draft.SessionID, err)
	}
	return nil
}

// ClearDraft removes the stored draft.
func (s *RedisDraftStore) ClearDraft(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del draft %s: %w", sessionID, err)
	}
	return nil
}

// LoadImageURL returns the cached upload URL for the session.
func (s *RedisDraftStore) LoadImageURL(ctx context.Context, sessionID string) (string, error) {
	if s.client == nil {
		return "", appErrors.ErrCacheMiss
	}
	url, err := s.client.Get(ctx, imageKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", appErrors.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get image url %s: %w", sessionID, err)
	}
	return url, nil
}

// SaveImageURL caches the upload URL with the same TTL as drafts.
func (s *RedisDraftStore) SaveImageURL(ctx context.Context, sessionID, url string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Set(ctx, imageKey(sessionID), url, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set image url %s: %w", sessionID, err)
	}
	return nil
}

// marshalDraft and unmarshalDraft define the durable tier's wire form: plain
// JSON with event dates as ISO strings that reconstruct into time.Time.
func marshalDraft(draft *models.Draft) ([]byte, error) {
	return json.Marshal(draft)
}

func unmarshalDraft(raw []byte) (*models.Draft, error) {
	var draft models.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// ClearImageURL removes the cached upload URL.
func (s *RedisDraftStore) ClearImageURL(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, imageKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del image url %s: %w", sessionID, err)
	}
	return nil
}
