package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type eventMetricsStub struct {
	queries []string
}

func (s *eventMetricsStub) ObserveDBQuery(label string, duration time.Duration) {
	s.queries = append(s.queries, label)
}

type eventAdminRepoStub struct {
	events        map[string]*models.EventRecord
	listResp      []models.EventRecord
	listTotal     int
	listErr       error
	lastFilter    models.EventFilter
	updatedStatus models.EventStatus
	deleted       []string
}

func (s *eventAdminRepoStub) GetByID(ctx context.Context, id string) (*models.EventRecord, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (s *eventAdminRepoStub) List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, int, error) {
	s.lastFilter = filter
	return s.listResp, s.listTotal, s.listErr
}

func (s *eventAdminRepoStub) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	s.updatedStatus = status
	s.events[id].Status = status
	return nil
}

func (s *eventAdminRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.events, id)
	return nil
}

func newEventAdminRepoStub(status models.EventStatus) *eventAdminRepoStub {
	return &eventAdminRepoStub{
		events: map[string]*models.EventRecord{
			"event-1": {ID: "event-1", Name: "Art Night", Status: status},
		},
	}
}

func TestEventServiceApprovePending(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	svc := NewEventService(repo, nil, nil)

	event, err := svc.UpdateStatus(context.Background(), "event-1", "approved")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusApproved, event.Status)
	assert.Equal(t, models.EventStatusApproved, repo.updatedStatus)
}

func TestEventServicePublishApproved(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusApproved)
	svc := NewEventService(repo, nil, nil)

	event, err := svc.UpdateStatus(context.Background(), "event-1", "published")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusPublished, event.Status)
}

func TestEventServiceRejectsSkippingTransition(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	svc := NewEventService(repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "event-1", "published")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.EventStatusPending, repo.events["event-1"].Status)
}

func TestEventServiceRejectsBackwardTransition(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPublished)
	svc := NewEventService(repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "event-1", "approved")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestEventServiceRejectsUnknownStatus(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	svc := NewEventService(repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "event-1", "pending")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceGetNotFound(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	svc := NewEventService(repo, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceListDefaultsPagination(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	repo.listResp = []models.EventRecord{{ID: "event-1"}}
	repo.listTotal = 1
	svc := NewEventService(repo, nil, nil)

	_, pagination, err := svc.List(context.Background(), models.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 20, repo.lastFilter.PageSize)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestEventServiceTimesRepositoryQueries(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPending)
	metrics := &eventMetricsStub{}
	svc := NewEventService(repo, metrics, nil)

	_, _, err := svc.List(context.Background(), models.EventFilter{})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "event-1", "approved")
	require.NoError(t, err)

	assert.Equal(t, []string{"events_list", "events_get", "events_update_status"}, metrics.queries)
}

func TestEventServiceDelete(t *testing.T) {
	repo := newEventAdminRepoStub(models.EventStatusPublished)
	svc := NewEventService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "event-1"))
	assert.Equal(t, []string{"event-1"}, repo.deleted)

	err := svc.Delete(context.Background(), "event-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
