package repository

import (
	"context"
	"sync"
	"time"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type memoryEntry struct {
	draft    *models.Draft
	imageURL string
	expires  time.Time
}

// MemoryDraftStore is the session-scoped draft tier: an in-process map with a
// short TTL. It exists so a durable-tier outage alone never loses input, and
// it evaporates on restart by design.
type MemoryDraftStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryDraftStore constructs the session tier.
func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &MemoryDraftStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryDraftStore) live(sessionID string) *memoryEntry {
	entry, ok := s.entries[sessionID]
	if !ok {
		return nil
	}
	if s.now().After(entry.expires) {
		return nil
	}
	return entry
}

// LoadDraft returns the stored draft when present and unexpired.
func (s *MemoryDraftStore) LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry := s.live(sessionID)
	if entry == nil || entry.draft == nil {
		return nil, appErrors.ErrCacheMiss
	}
	copied := *entry.draft
	return &copied, nil
}

// SaveDraft overwrites the session's draft and refreshes its TTL.
func (s *MemoryDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.live(draft.SessionID)
	if entry == nil {
		entry = &memoryEntry{}
		s.entries[draft.SessionID] = entry
	}
	copied := *draft
	entry.draft = &copied
	entry.expires = s.now().Add(s.ttl)
	return nil
}

// ClearDraft drops the session's draft but keeps any cached image URL.
func (s *MemoryDraftStore) ClearDraft(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry := s.live(sessionID); entry != nil {
		entry.draft = nil
		if entry.imageURL == "" {
			delete(s.entries, sessionID)
		}
	} else {
		delete(s.entries, sessionID)
	}
	return nil
}

// LoadImageURL returns the cached upload URL for the session.
func (s *MemoryDraftStore) LoadImageURL(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry := s.live(sessionID)
	if entry == nil || entry.imageURL == "" {
		return "", appErrors.ErrCacheMiss
	}
	return entry.imageURL, nil
}

// SaveImageURL caches the upload URL and refreshes the TTL.
func (s *MemoryDraftStore) SaveImageURL(ctx context.Context, sessionID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.live(sessionID)
	if entry == nil {
		entry = &memoryEntry{}
		s.entries[sessionID] = entry
	}
	entry.imageURL = url
	entry.expires = s.now().Add(s.ttl)
	return nil
}

// ClearImageURL drops the cached upload URL.
func (s *MemoryDraftStore) ClearImageURL(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry := s.live(sessionID); entry != nil {
		entry.imageURL = ""
		if entry.draft == nil {
			delete(s.entries, sessionID)
		}
	}
	return nil
}
