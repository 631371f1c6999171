package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/models"
)

func newEventRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestEventRepositoryCreateForcesPending(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO events")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.EventRecord{
		Name:         "Science Fair",
		EventDate:    time.Date(2027, 5, 2, 0, 0, 0, 0, time.UTC),
		TimeRange:    "6:00 PM - 8:00 PM",
		Description:  "Annual science fair.",
		SchoolName:   "Riverside High",
		ContactName:  "Dana Wells",
		ContactEmail: "dana@riverside.edu",
		Audience:     models.AudienceParents,
		Status:       models.EventStatusPublished, // must be overridden
	}
	require.NoError(t, repo.Create(context.Background(), event))

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.EventStatusPending, event.Status)
	assert.False(t, event.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryFindDuplicate(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	date := time.Date(2027, 5, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events WHERE name = $1 AND event_date::date = $2::date AND school_name = $3")).
		WithArgs("Science Fair", date, "Riverside High").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	dup, err := repo.FindDuplicate(context.Background(), "Science Fair", date, "Riverside High")
	require.NoError(t, err)
	assert.True(t, dup)
}

func TestEventRepositoryFindDuplicateNone(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	date := time.Date(2027, 5, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("Art Night", date, "Riverside High").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	dup, err := repo.FindDuplicate(context.Background(), "Art Night", date, "Riverside High")
	require.NoError(t, err)
	assert.False(t, dup)
}

func eventRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "event_date", "time_range", "description", "school_name", "contact_name", "contact_email",
		"audience", "location", "estimated_attendance", "participants", "key_highlights", "special_guests",
		"notable_achievements", "image_permission", "suggested_caption", "content_highlight", "message_tone",
		"image_url", "status", "created_at", "updated_at",
	}).AddRow(
		"event-1", "Science Fair", now.Add(72*time.Hour), "6:00 PM - 8:00 PM", "Annual fair.", "Riverside High",
		"Dana Wells", "dana@riverside.edu", "parents", nil, nil, nil, nil, nil, nil, true, nil, nil, nil,
		nil, "pending", now, now,
	)
}

func TestEventRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("status = ANY($1)")).
		WithArgs(pq.Array([]string{"pending"})).
		WillReturnRows(eventRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM events")).
		WithArgs(pq.Array([]string{"pending"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	events, total, err := repo.List(context.Background(), models.EventFilter{
		Statuses: []models.EventStatus{models.EventStatusPending},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.EventStatusPending, events[0].Status)
}

func TestEventRepositoryUpdateStatusMissingEvent(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET status = $1")).
		WithArgs("approved", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.EventStatusApproved)
	require.Error(t, err)
}

func TestEventRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newEventRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs("event-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "event-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
