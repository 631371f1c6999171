package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

func TestMemoryDraftStoreRoundTrip(t *testing.T) {
	store := NewMemoryDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{
		SessionID: "session-1",
		Values:    models.DraftValues{Name: "Spring Concert"},
	}))

	draft, err := store.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Spring Concert", draft.Values.Name)
}

func TestMemoryDraftStoreMissIsCacheMiss(t *testing.T) {
	store := NewMemoryDraftStore(time.Hour)

	_, err := store.LoadDraft(context.Background(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	_, err = store.LoadImageURL(context.Background(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestMemoryDraftStoreExpiry(t *testing.T) {
	store := NewMemoryDraftStore(time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "session-1"}))

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := store.LoadDraft(ctx, "session-1")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestMemoryDraftStoreSaveRefreshesTTL(t *testing.T) {
	store := NewMemoryDraftStore(time.Minute)
	base := time.Now()
	store.now = func() time.Time { return base }
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "session-1"}))

	store.now = func() time.Time { return base.Add(45 * time.Second) }
	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "session-1"}))

	store.now = func() time.Time { return base.Add(90 * time.Second) }
	_, err := store.LoadDraft(ctx, "session-1")
	assert.NoError(t, err, "second save must extend the deadline")
}

func TestMemoryDraftStoreClearDraftKeepsImageURL(t *testing.T) {
	store := NewMemoryDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "session-1"}))
	require.NoError(t, store.SaveImageURL(ctx, "session-1", "http://example.test/pic.jpg"))

	require.NoError(t, store.ClearDraft(ctx, "session-1"))

	_, err := store.LoadDraft(ctx, "session-1")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	url, err := store.LoadImageURL(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/pic.jpg", url)
}

func TestMemoryDraftStoreClearImageURLKeepsDraft(t *testing.T) {
	store := NewMemoryDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{SessionID: "session-1"}))
	require.NoError(t, store.SaveImageURL(ctx, "session-1", "http://example.test/pic.jpg"))

	require.NoError(t, store.ClearImageURL(ctx, "session-1"))

	_, err := store.LoadImageURL(ctx, "session-1")
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	_, err = store.LoadDraft(ctx, "session-1")
	assert.NoError(t, err)
}

func TestMemoryDraftStoreLoadReturnsCopy(t *testing.T) {
	store := NewMemoryDraftStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, &models.Draft{
		SessionID: "session-1",
		Values:    models.DraftValues{Name: "Original"},
	}))

	draft, err := store.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	draft.Values.Name = "Mutated"

	again, err := store.LoadDraft(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Values.Name)
}
