package dto

import (
	"time"

	"github.com/school-spotlight/events-api/internal/models"
)

// SaveDraftRequest carries the current form values for one session.
type SaveDraftRequest struct {
	Values models.DraftValues `json:"values"`
}

// DraftResponse returns the restored draft plus any cached image URL.
type DraftResponse struct {
	Values   models.DraftValues `json:"values"`
	ImageURL string             `json:"image_url,omitempty"`
	SavedAt  *time.Time         `json:"saved_at,omitempty"`
}
