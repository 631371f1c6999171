package models

import "time"

// DraftValues mirrors the submission form fields. Every field is optional
// because a draft may be saved in any intermediate, possibly-invalid state.
// The image itself is never part of a draft; only its uploaded URL is cached,
// separately from the form values.
type DraftValues struct {
	Name                string     `json:"name,omitempty"`
	EventDate           *time.Time `json:"event_date,omitempty"`
	TimeRange           string     `json:"time_range,omitempty"`
	Description         string     `json:"description,omitempty"`
	SchoolName          string     `json:"school_name,omitempty"`
	ContactName         string     `json:"contact_name,omitempty"`
	ContactEmail        string     `json:"contact_email,omitempty"`
	Audience            string     `json:"audience,omitempty"`
	Location            string     `json:"location,omitempty"`
	EstimatedAttendance *int       `json:"estimated_attendance,omitempty"`
	Participants        string     `json:"participants,omitempty"`
	KeyHighlights       string     `json:"key_highlights,omitempty"`
	SpecialGuests       string     `json:"special_guests,omitempty"`
	NotableAchievements string     `json:"notable_achievements,omitempty"`
	ImagePermission     bool       `json:"image_permission,omitempty"`
	SuggestedCaption    string     `json:"suggested_caption,omitempty"`
	ContentHighlight    string     `json:"content_highlight,omitempty"`
	MessageTone         string     `json:"message_tone,omitempty"`
}

// IsEmpty reports whether the draft carries no user input at all.
func (v DraftValues) IsEmpty() bool {
	return v == DraftValues{}
}

// Draft is the persisted snapshot of in-progress form input for one session.
type Draft struct {
	SessionID string      `json:"session_id"`
	Values    DraftValues `json:"values"`
	SavedAt   time.Time   `json:"saved_at"`
}
