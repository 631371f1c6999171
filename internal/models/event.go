package models

import "time"

// EventStatus tracks the review lifecycle of a submitted event. Transitions
// only ever move forward: pending -> approved -> published.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusApproved  EventStatus = "approved"
	EventStatusPublished EventStatus = "published"
)

// CanTransitionTo reports whether the status may advance to next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusPending:
		return next == EventStatusApproved
	case EventStatusApproved:
		return next == EventStatusPublished
	default:
		return false
	}
}

// AudienceType enumerates who an event is aimed at.
type AudienceType string

const (
	AudienceStudents  AudienceType = "students"
	AudienceParents   AudienceType = "parents"
	AudienceFaculty   AudienceType = "faculty"
	AudienceCommunity AudienceType = "community"
	AudienceAll       AudienceType = "all"
)

// ValidAudience reports whether the value is a known audience type.
func ValidAudience(value string) bool {
	switch AudienceType(value) {
	case AudienceStudents, AudienceParents, AudienceFaculty, AudienceCommunity, AudienceAll:
		return true
	default:
		return false
	}
}

// EventRecord represents one submitted school event.
type EventRecord struct {
	ID                  string       `db:"id" json:"id"`
	Name                string       `db:"name" json:"name"`
	EventDate           time.Time    `db:"event_date" json:"event_date"`
	TimeRange           string       `db:"time_range" json:"time_range"`
	Description         string       `db:"description" json:"description"`
	SchoolName          string       `db:"school_name" json:"school_name"`
	ContactName         string       `db:"contact_name" json:"contact_name"`
	ContactEmail        string       `db:"contact_email" json:"contact_email"`
	Audience            AudienceType `db:"audience" json:"audience"`
	Location            *string      `db:"location" json:"location,omitempty"`
	EstimatedAttendance *int         `db:"estimated_attendance" json:"estimated_attendance,omitempty"`
	Participants        *string      `db:"participants" json:"participants,omitempty"`
	KeyHighlights       *string      `db:"key_highlights" json:"key_highlights,omitempty"`
	SpecialGuests       *string      `db:"special_guests" json:"special_guests,omitempty"`
	NotableAchievements *string      `db:"notable_achievements" json:"notable_achievements,omitempty"`
	ImagePermission     bool         `db:"image_permission" json:"image_permission"`
	SuggestedCaption    *string      `db:"suggested_caption" json:"suggested_caption,omitempty"`
	ContentHighlight    *string      `db:"content_highlight" json:"content_highlight,omitempty"`
	MessageTone         *string      `db:"message_tone" json:"message_tone,omitempty"`
	ImageURL            *string      `db:"image_url" json:"image_url,omitempty"`
	Status              EventStatus  `db:"status" json:"status"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// EventOrder selects list ordering for the dashboard and public views.
type EventOrder string

const (
	OrderByEventDateAsc  EventOrder = "event_date_asc"
	OrderByCreatedAtDesc EventOrder = "created_at_desc"
)

// EventFilter narrows down listed events.
type EventFilter struct {
	Statuses []EventStatus
	School   string
	Order    EventOrder
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
