package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/repository"
)

type failingDraftStore struct {
	repository.DraftStore
	loadErr error
	saveErr error
}

func (s *failingDraftStore) LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error) {
	return nil, s.loadErr
}

func (s *failingDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	return s.saveErr
}

func (s *failingDraftStore) LoadImageURL(ctx context.Context, sessionID string) (string, error) {
	return "", s.loadErr
}

func (s *failingDraftStore) ClearDraft(ctx context.Context, sessionID string) error {
	return s.saveErr
}

func (s *failingDraftStore) ClearImageURL(ctx context.Context, sessionID string) error {
	return s.saveErr
}

type draftMetricsStub struct {
	saves  int
	hits   int
	misses int
}

func (s *draftMetricsStub) ObserveDraftSave() {
	s.saves++
}

func (s *draftMetricsStub) RecordCacheOperation(hit bool) {
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}

func TestDraftServiceRoundTrip(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil, nil)

	date := time.Date(2027, 3, 14, 0, 0, 0, 0, time.UTC)
	attendance := 120
	values := models.DraftValues{
		Name:                "Spring Concert",
		EventDate:           &date,
		Description:         "Choir and band perform together.",
		SchoolName:          "Riverside High",
		ContactEmail:        "music@riverside.edu",
		EstimatedAttendance: &attendance,
	}

	require.NoError(t, svc.Save(context.Background(), "session-1", values))

	restored := svc.Load(context.Background(), "session-1")
	assert.Equal(t, "Spring Concert", restored.Values.Name)
	require.NotNil(t, restored.Values.EventDate)
	assert.True(t, restored.Values.EventDate.Equal(date), "date must round-trip to the day")
	require.NotNil(t, restored.Values.EstimatedAttendance)
	assert.Equal(t, 120, *restored.Values.EstimatedAttendance)
	require.NotNil(t, restored.SavedAt)
}

func TestDraftServiceLoadFailOpen(t *testing.T) {
	store := &failingDraftStore{loadErr: errors.New("redis down")}
	svc := NewDraftService(store, nil, nil)

	restored := svc.Load(context.Background(), "session-1")
	assert.True(t, restored.Values.IsEmpty(), "storage failure must look like an absent draft")
	assert.Nil(t, restored.SavedAt)
	assert.Empty(t, restored.ImageURL)
}

func TestDraftServiceLoadIncludesImageURL(t *testing.T) {
	store := newDraftStoreStub()
	store.imageURLs["session-1"] = "http://localhost:8080/uploads/events/pic.jpg"
	svc := NewDraftService(store, nil, nil)

	restored := svc.Load(context.Background(), "session-1")
	assert.Equal(t, "http://localhost:8080/uploads/events/pic.jpg", restored.ImageURL)
}

func TestDraftServiceSaveSurfacesTotalFailure(t *testing.T) {
	store := &failingDraftStore{saveErr: errors.New("both tiers down")}
	svc := NewDraftService(store, nil, nil)

	err := svc.Save(context.Background(), "session-1", models.DraftValues{Name: "x"})
	require.Error(t, err)
}

func TestDraftServiceRecordsCacheHitsAndMisses(t *testing.T) {
	store := newDraftStoreStub()
	metrics := &draftMetricsStub{}
	svc := NewDraftService(store, metrics, nil)

	svc.Load(context.Background(), "session-1")
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)

	require.NoError(t, svc.Save(context.Background(), "session-1", models.DraftValues{Name: "Book Fair"}))
	assert.Equal(t, 1, metrics.saves)

	svc.Load(context.Background(), "session-1")
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestDraftServiceClearRemovesBothHalves(t *testing.T) {
	store := newDraftStoreStub()
	store.drafts["session-1"] = &models.Draft{SessionID: "session-1"}
	store.imageURLs["session-1"] = "http://example.test/pic.jpg"
	svc := NewDraftService(store, nil, nil)

	svc.Clear(context.Background(), "session-1")
	assert.Empty(t, store.drafts)
	assert.Empty(t, store.imageURLs)
}
