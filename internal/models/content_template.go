package models

import "time"

// ReviewStatus tracks the marketing-copy review lifecycle.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// ValidReviewVerdict reports whether the value is an acceptable review outcome.
func ValidReviewVerdict(value string) bool {
	switch ReviewStatus(value) {
	case ReviewStatusApproved, ReviewStatusRejected:
		return true
	default:
		return false
	}
}

// ContentTemplate is marketing copy generated out-of-band for one event.
// The automation writes it; this API only reads it and updates review status.
type ContentTemplate struct {
	ID              string       `db:"id" json:"id"`
	EventID         string       `db:"event_id" json:"event_id"`
	SocialPost      string       `db:"social_post" json:"social_post"`
	PressRelease    string       `db:"press_release" json:"press_release"`
	NewsletterBlurb string       `db:"newsletter_blurb" json:"newsletter_blurb"`
	ReviewStatus    ReviewStatus `db:"review_status" json:"review_status"`
	ReviewerNotes   *string      `db:"reviewer_notes" json:"reviewer_notes,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}
