package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type contentTemplateRepository interface {
	GetByEventID(ctx context.Context, eventID string) (*models.ContentTemplate, error)
	ListPending(ctx context.Context, limit int) ([]models.ContentTemplate, error)
	UpdateReview(ctx context.Context, id string, status models.ReviewStatus, notes *string) error
}

// ContentService drives the marketing-copy review screen. Templates are
// written by an external automation; a missing template is an expected
// transient state while generation is still running.
type ContentService struct {
	repo      contentTemplateRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService constructs the service.
func NewContentService(repo contentTemplateRepository, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, validator: validate, logger: logger}
}

// GetForEvent returns the template generated for an event.
func (s *ContentService) GetForEvent(ctx context.Context, eventID string) (*models.ContentTemplate, error) {
	template, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTemplateNotReady, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get content template")
	}
	return template, nil
}

// ListPending returns templates awaiting review.
func (s *ContentService) ListPending(ctx context.Context, limit int) ([]models.ContentTemplate, error) {
	templates, err := s.repo.ListPending(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending templates")
	}
	return templates, nil
}

// Review records an approve/reject verdict with optional reviewer notes.
func (s *ContentService) Review(ctx context.Context, templateID string, req dto.ReviewContentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	verdict := strings.ToLower(req.Verdict)
	if !models.ValidReviewVerdict(verdict) {
		return appErrors.Clone(appErrors.ErrValidation, "verdict must be approved or rejected")
	}
	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}
	if err := s.repo.UpdateReview(ctx, templateID, models.ReviewStatus(verdict), notes); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record review")
	}
	return nil
}
