package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type eventRepository interface {
	GetByID(ctx context.Context, id string) (*models.EventRecord, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, int, error)
	UpdateStatus(ctx context.Context, id string, status models.EventStatus) error
	Delete(ctx context.Context, id string) error
}

type eventMetrics interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// EventService backs the admin dashboard: filtered listings and the
// forward-only status lifecycle.
type EventService struct {
	repo    eventRepository
	metrics eventMetrics
	logger  *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, metrics eventMetrics, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, metrics: metrics, logger: logger}
}

func (s *EventService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// List returns events for the dashboard with pagination.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	start := time.Now()
	events, total, err := s.repo.List(ctx, filter)
	s.observeQuery("events_list", start)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return events, pagination, nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.EventRecord, error) {
	start := time.Now()
	event, err := s.repo.GetByID(ctx, id)
	s.observeQuery("events_get", start)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get event")
	}
	return event, nil
}

// UpdateStatus advances an event's lifecycle. Only pending->approved and
// approved->published are legal; anything else is rejected.
func (s *EventService) UpdateStatus(ctx context.Context, id string, status string) (*models.EventRecord, error) {
	next := models.EventStatus(strings.ToLower(status))
	switch next {
	case models.EventStatusApproved, models.EventStatusPublished:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved or published")
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			"cannot move event from "+string(event.Status)+" to "+string(next))
	}
	start := time.Now()
	err = s.repo.UpdateStatus(ctx, id, next)
	s.observeQuery("events_update_status", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event status")
	}
	event.Status = next
	s.logger.Info("event status advanced",
		zap.String("event_id", id),
		zap.String("status", string(next)))
	return event, nil
}

// Delete removes an event entirely. The only way backward in the lifecycle.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.observeQuery("events_delete", start)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	return nil
}
