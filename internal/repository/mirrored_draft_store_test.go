package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type brokenDraftStore struct {
	err error
}

func (s *brokenDraftStore) LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error) {
	return nil, s.err
}

func (s *brokenDraftStore) SaveDraft(ctx context.Context, draft *models.Draft) error {
	return s.err
}

func (s *brokenDraftStore) ClearDraft(ctx context.Context, sessionID string) error {
	return s.err
}

func (s *brokenDraftStore) LoadImageURL(ctx context.Context, sessionID string) (string, error) {
	return "", s.err
}

func (s *brokenDraftStore) SaveImageURL(ctx context.Context, sessionID, url string) error {
	return s.err
}

func (s *brokenDraftStore) ClearImageURL(ctx context.Context, sessionID string) error {
	return s.err
}

func TestMirroredDraftStoreSaveWritesBothTiers(t *testing.T) {
	durable := NewMemoryDraftStore(time.Hour)
	session := NewMemoryDraftStore(time.Hour)
	store := NewMirroredDraftStore(durable, session, nil)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{
		SessionID: "session-1",
		Values:    models.DraftValues{Name: "Book Fair"},
	}))

	fromDurable, err := durable.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Book Fair", fromDurable.Values.Name)

	fromSession, err := session.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Book Fair", fromSession.Values.Name)
}

func TestMirroredDraftStoreReadsDurableFirst(t *testing.T) {
	durable := NewMemoryDraftStore(time.Hour)
	session := NewMemoryDraftStore(time.Hour)
	store := NewMirroredDraftStore(durable, session, nil)
	ctx := context.Background()

	require.NoError(t, durable.SaveDraft(ctx, &models.Draft{SessionID: "s", Values: models.DraftValues{Name: "durable copy"}}))
	require.NoError(t, session.SaveDraft(ctx, &models.Draft{SessionID: "s", Values: models.DraftValues{Name: "session copy"}}))

	draft, err := store.LoadDraft(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "durable copy", draft.Values.Name)
}

func TestMirroredDraftStoreFallsBackToSessionTier(t *testing.T) {
	session := NewMemoryDraftStore(time.Hour)
	store := NewMirroredDraftStore(&brokenDraftStore{err: errors.New("redis down")}, session, nil)
	ctx := context.Background()

	require.NoError(t, session.SaveDraft(ctx, &models.Draft{SessionID: "s", Values: models.DraftValues{Name: "survivor"}}))

	draft, err := store.LoadDraft(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "survivor", draft.Values.Name)
}

func TestMirroredDraftStoreSaveToleratesOneTierDown(t *testing.T) {
	session := NewMemoryDraftStore(time.Hour)
	store := NewMirroredDraftStore(&brokenDraftStore{err: errors.New("redis down")}, session, nil)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "s"}))
	require.NoError(t, store.SaveImageURL(ctx, "s", "http://example.test/pic.jpg"))
}

func TestMirroredDraftStoreSaveFailsWhenBothTiersDown(t *testing.T) {
	down := errors.New("everything is on fire")
	store := NewMirroredDraftStore(&brokenDraftStore{err: down}, &brokenDraftStore{err: down}, nil)

	err := store.SaveDraft(context.Background(), &models.Draft{SessionID: "s"})
	require.Error(t, err)

	err = store.SaveImageURL(context.Background(), "s", "url")
	require.Error(t, err)
}

func TestMirroredDraftStoreClearIsNonFatal(t *testing.T) {
	store := NewMirroredDraftStore(&brokenDraftStore{err: errors.New("down")}, &brokenDraftStore{err: errors.New("down")}, nil)

	assert.NoError(t, store.ClearDraft(context.Background(), "s"))
	assert.NoError(t, store.ClearImageURL(context.Background(), "s"))
}

func TestMirroredDraftStoreMissOnBothTiers(t *testing.T) {
	store := NewMirroredDraftStore(NewMemoryDraftStore(time.Hour), NewMemoryDraftStore(time.Hour), nil)

	_, err := store.LoadDraft(context.Background(), "absent")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}
