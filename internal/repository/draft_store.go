package repository

import (
	"context"
	"fmt"

	"github.com/school-spotlight/events-api/internal/models"
)

// DraftStore persists in-progress form input and the per-session image URL
// cache. Absence is reported as appErrors.ErrCacheMiss; callers treat every
// other failure as fail-open.
//
// Two tiers implement this interface (Redis as the durable store, an
// in-process map as the session store) and MirroredDraftStore composes them
// for redundancy, so losing one tier never loses the user's input.
type DraftStore interface {
	LoadDraft(ctx context.Context, sessionID string) (*models.Draft, error)
	SaveDraft(ctx context.Context, draft *models.Draft) error
	ClearDraft(ctx context.Context, sessionID string) error

	// Image URLs are cached separately from form values, keyed per draft
	// session, so an abandoned form cannot leak its image into a new one.
	LoadImageURL(ctx context.Context, sessionID string) (string, error)
	SaveImageURL(ctx context.Context, sessionID, url string) error
	ClearImageURL(ctx context.Context, sessionID string) error
}

func draftKey(sessionID string) string {
	return fmt.Sprintf("draft:form:%s", sessionID)
}

func imageKey(sessionID string) string {
	return fmt.Sprintf("draft:image:%s", sessionID)
}
