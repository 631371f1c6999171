package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/school-spotlight/events-api/internal/models"
)

const eventColumns = `id, name, event_date, time_range, description, school_name, contact_name, contact_email,
audience, location, estimated_attendance, participants, key_highlights, special_guests, notable_achievements,
image_permission, suggested_caption, content_highlight, message_tone, image_url, status, created_at, updated_at`

// EventRepository provides persistence for submitted events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event. Status always starts at pending regardless of
// what the caller set on the record.
func (r *EventRepository) Create(ctx context.Context, event *models.EventRecord) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.Status = models.EventStatusPending
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	query := `INSERT INTO events (id, name, event_date, time_range, description, school_name, contact_name, contact_email,
audience, location, estimated_attendance, participants, key_highlights, special_guests, notable_achievements,
image_permission, suggested_caption, content_highlight, message_tone, image_url, status, created_at, updated_at)
VALUES (:id, :name, :event_date, :time_range, :description, :school_name, :contact_name, :contact_email,
:audience, :location, :estimated_attendance, :participants, :key_highlights, :special_guests, :notable_achievements,
:image_permission, :suggested_caption, :content_highlight, :message_tone, :image_url, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetByID returns an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.EventRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.EventRecord
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// FindDuplicate reports whether an event with the same name, calendar date and
// school already exists.
func (r *EventRepository) FindDuplicate(ctx context.Context, name string, date time.Time, schoolName string) (bool, error) {
	const query = `SELECT COUNT(*) FROM events WHERE name = $1 AND event_date::date = $2::date AND school_name = $3`
	var count int
	if err := r.db.GetContext(ctx, &count, query, name, date, schoolName); err != nil {
		return false, fmt.Errorf("find duplicate event: %w", err)
	}
	return count > 0, nil
}

// List returns events matching the filter plus the total count.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if len(filter.Statuses) > 0 {
		values := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			values = append(values, string(s))
		}
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(values))
	}
	if filter.School != "" {
		where = append(where, fmt.Sprintf("school_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.School+"%")
	}
	whereClause := strings.Join(where, " AND ")

	orderClause := "created_at DESC"
	if filter.Order == models.OrderByEventDateAsc {
		orderClause = "event_date ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		eventColumns, whereClause, orderClause, size, offset)
	var events []models.EventRecord
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// UpdateStatus advances the lifecycle status of an event.
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	const query = `UPDATE events SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update event status: no event with id %s", id)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
