package dto

import "time"

// SubmitEventForm is the multipart/JSON payload as the client sends it. Dates
// travel as YYYY-MM-DD strings and are parsed by the handler before the
// service sees them.
type SubmitEventForm struct {
	Name                string `form:"name" json:"name"`
	EventDate           string `form:"event_date" json:"event_date"`
	TimeRange           string `form:"time_range" json:"time_range"`
	Description         string `form:"description" json:"description"`
	SchoolName          string `form:"school_name" json:"school_name"`
	ContactName         string `form:"contact_name" json:"contact_name"`
	ContactEmail        string `form:"contact_email" json:"contact_email"`
	Audience            string `form:"audience" json:"audience"`
	Location            string `form:"location" json:"location"`
	EstimatedAttendance *int   `form:"estimated_attendance" json:"estimated_attendance"`
	Participants        string `form:"participants" json:"participants"`
	KeyHighlights       string `form:"key_highlights" json:"key_highlights"`
	SpecialGuests       string `form:"special_guests" json:"special_guests"`
	NotableAchievements string `form:"notable_achievements" json:"notable_achievements"`
	ImagePermission     bool   `form:"image_permission" json:"image_permission"`
	SuggestedCaption    string `form:"suggested_caption" json:"suggested_caption"`
	ContentHighlight    string `form:"content_highlight" json:"content_highlight"`
	MessageTone         string `form:"message_tone" json:"message_tone"`
}

// SubmitEventRequest is the parsed submission the workflow validates and
// persists. Field messages mirror what the form shows inline.
type SubmitEventRequest struct {
	Name                string    `validate:"required,min=3,max=200"`
	EventDate           time.Time `validate:"required,notpast"`
	TimeRange           string    // repaired, never rejected
	Description         string    `validate:"required,min=10,max=3000"`
	SchoolName          string    `validate:"required,min=2,max=200"`
	ContactName         string    `validate:"required,min=2,max=200"`
	ContactEmail        string    `validate:"required,email"`
	Audience            string    `validate:"required,audience"`
	Location            string    `validate:"max=300"`
	EstimatedAttendance *int      `validate:"omitempty,min=0"`
	Participants        string    `validate:"max=1000"`
	KeyHighlights       string    `validate:"max=2000"`
	SpecialGuests       string    `validate:"max=1000"`
	NotableAchievements string    `validate:"max=2000"`
	ImagePermission     bool
	SuggestedCaption    string `validate:"max=500"`
	ContentHighlight    string `validate:"max=500"`
	MessageTone         string `validate:"max=100"`
}

// FieldError carries one inline validation message for the form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateEventResponse reports per-field errors for reactive validation.
type ValidateEventResponse struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// SubmitEventResponse is returned on a successful submission.
type SubmitEventResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateEventStatusRequest advances an event's lifecycle.
type UpdateEventStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
