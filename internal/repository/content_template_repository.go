package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/school-spotlight/events-api/internal/models"
)

const templateColumns = `id, event_id, social_post, press_release, newsletter_blurb, review_status, reviewer_notes, created_at, updated_at`

// ContentTemplateRepository reads templates produced by the content automation
// and records review verdicts. Rows are inserted by the automation, not here.
type ContentTemplateRepository struct {
	db *sqlx.DB
}

// NewContentTemplateRepository creates the repository.
func NewContentTemplateRepository(db *sqlx.DB) *ContentTemplateRepository {
	return &ContentTemplateRepository{db: db}
}

// GetByEventID returns the template generated for an event, if any.
func (r *ContentTemplateRepository) GetByEventID(ctx context.Context, eventID string) (*models.ContentTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM content_templates WHERE event_id = $1", templateColumns)
	var template models.ContentTemplate
	if err := r.db.GetContext(ctx, &template, query, eventID); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListPending returns templates awaiting review, oldest first.
func (r *ContentTemplateRepository) ListPending(ctx context.Context, limit int) ([]models.ContentTemplate, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM content_templates WHERE review_status = $1 ORDER BY created_at ASC LIMIT %d",
		templateColumns, limit)
	var templates []models.ContentTemplate
	if err := r.db.SelectContext(ctx, &templates, query, string(models.ReviewStatusPending)); err != nil {
		return nil, fmt.Errorf("list pending templates: %w", err)
	}
	return templates, nil
}

// UpdateReview records the reviewer's verdict and optional notes.
func (r *ContentTemplateRepository) UpdateReview(ctx context.Context, id string, status models.ReviewStatus, notes *string) error {
	const query = `UPDATE content_templates SET review_status = $1, reviewer_notes = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, string(status), notes, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update template review: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update template review: no template with id %s", id)
	}
	return nil
}
