package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/repository"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type draftMetrics interface {
	ObserveDraftSave()
	RecordCacheOperation(hit bool)
}

// DraftService fronts the mirrored draft store with the fail-open semantics
// the form relies on: a storage problem behaves like an absent draft and
// never blocks the user.
type DraftService struct {
	store   repository.DraftStore
	metrics draftMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewDraftService constructs the service.
func NewDraftService(store repository.DraftStore, metrics draftMetrics, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{store: store, metrics: metrics, logger: logger, now: time.Now}
}

// Load restores the session's draft and any cached image URL. Read failures
// are logged and reported as an empty draft.
func (s *DraftService) Load(ctx context.Context, sessionID string) dto.DraftResponse {
	resp := dto.DraftResponse{}

	draft, err := s.store.LoadDraft(ctx, sessionID)
	switch {
	case err == nil:
		resp.Values = draft.Values
		savedAt := draft.SavedAt
		resp.SavedAt = &savedAt
	case errors.Is(err, appErrors.ErrCacheMiss):
		// normal: nothing saved yet
	default:
		s.logger.Warn("draft load failed, returning empty draft", zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(err == nil)
	}

	if url, err := s.store.LoadImageURL(ctx, sessionID); err == nil {
		resp.ImageURL = url
	} else if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("image url load failed", zap.Error(err))
	}
	return resp
}

// Save overwrites the session's draft. The same idempotent write backs every
// trigger the client uses: the dirty-state timer, per-change saves and the
// unload hook.
func (s *DraftService) Save(ctx context.Context, sessionID string, values models.DraftValues) error {
	draft := &models.Draft{
		SessionID: sessionID,
		Values:    values,
		SavedAt:   s.now().UTC(),
	}
	if err := s.store.SaveDraft(ctx, draft); err != nil {
		s.logger.Warn("draft save failed on both tiers", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	if s.metrics != nil {
		s.metrics.ObserveDraftSave()
	}
	return nil
}

// Clear removes the draft and image cache on explicit user reset.
func (s *DraftService) Clear(ctx context.Context, sessionID string) {
	if err := s.store.ClearDraft(ctx, sessionID); err != nil {
		s.logger.Warn("draft clear failed", zap.Error(err))
	}
	if err := s.store.ClearImageURL(ctx, sessionID); err != nil {
		s.logger.Warn("image cache clear failed", zap.Error(err))
	}
}
