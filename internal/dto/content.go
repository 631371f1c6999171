package dto

// ReviewContentRequest records a review verdict for a content template.
type ReviewContentRequest struct {
	Verdict string `json:"verdict" validate:"required"`
	Notes   string `json:"notes" validate:"max=2000"`
}
