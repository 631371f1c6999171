package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

// MirroredDraftStore writes identical copies of every draft to both tiers and
// reads durable-first with a session fallback. A single failing tier is
// logged and tolerated; only both tiers failing surfaces an error. There is
// no transactional guarantee across the pair; last write wins.
type MirroredDraftStore struct {
	durable DraftStore
	session DraftStore
	logger  *zap.Logger
}

// NewMirroredDraftStore composes the two tiers.
func NewMirroredDraftStore(durable, session DraftStore, logger *zap.Logger) *MirroredDraftStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MirroredDraftStore{durable: durable, session: session, logger: logger}
}

// LoadDraft reads the durable tier first, falling back to the session tier.
func (s *MirroredDraftStore) LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error) {
	draft, err := s.durable.LoadDraft(ctx, sessionID)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("durable draft read failed, trying session tier", zap.Error(err))
	}
	return s.session.LoadDraft(ctx, sessionID)
}

// SaveDraft writes to both tiers; it fails only when neither tier accepted
// the write.
func (s *MirroredDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	durableErr := s.durable.SaveDraft(ctx, draft)
	if durableErr != nil {
		s.logger.Warn("durable draft write failed", zap.Error(durableErr))
	}
	sessionErr := s.session.SaveDraft(ctx, draft)
	if sessionErr != nil {
		s.logger.Warn("session draft write failed", zap.Error(sessionErr))
	}
	if durableErr != nil && sessionErr != nil {
		return durableErr
	}
	return nil
}

// ClearDraft removes the draft from both tiers; failures are non-fatal.
func (s *MirroredDraftStore) ClearDraft(ctx context.Context, sessionID string) error {
	if err := s.durable.ClearDraft(ctx, sessionID); err != nil {
		s.logger.Warn("durable draft clear failed", zap.Error(err))
	}
	if err := s.session.ClearDraft(ctx, sessionID); err != nil {
		s.logger.Warn("session draft clear failed", zap.Error(err))
	}
	return nil
}

// LoadImageURL reads durable-first with session fallback.
func (s *MirroredDraftStore) LoadImageURL(ctx context.Context, sessionID string) (string, error) {
	url, err := s.durable.LoadImageURL(ctx, sessionID)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("durable image url read failed, trying session tier", zap.Error(err))
	}
	return s.session.LoadImageURL(ctx, sessionID)
}

// SaveImageURL mirrors the URL to both tiers.
func (s *MirroredDraftStore) SaveImageURL(ctx context.Context, sessionID, url string) error {
	durableErr := s.durable.SaveImageURL(ctx, sessionID, url)
	if durableErr != nil {
		s.logger.Warn("durable image url write failed", zap.Error(durableErr))
	}
	sessionErr := s.session.SaveImageURL(ctx, sessionID, url)
	if sessionErr != nil {
		s.logger.Warn("session image url write failed", zap.Error(sessionErr))
	}
	if durableErr != nil && sessionErr != nil {
		return durableErr
	}
	return nil
}

// ClearImageURL removes the URL from both tiers; failures are non-fatal.
func (s *MirroredDraftStore) ClearImageURL(ctx context.Context, sessionID string) error {
	if err := s.durable.ClearImageURL(ctx, sessionID); err != nil {
		s.logger.Warn("durable image url clear failed", zap.Error(err))
	}
	if err := s.session.ClearImageURL(ctx, sessionID); err != nil {
		s.logger.Warn("session image url clear failed", zap.Error(err))
	}
	return nil
}
