package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/service"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/response"
)

// SessionHeader carries the client's draft session id.
const SessionHeader = "X-Draft-Session"

const eventDateLayout = "2006-01-02"

type submissionService interface {
	Submit(ctx context.Context, sessionID string, req dto.SubmitEventRequest, image *service.ImageUpload) (*models.EventRecord, error)
	ValidateFields(req dto.SubmitEventRequest, partial bool) []dto.FieldError
}

// SubmissionHandler exposes the public submission endpoints.
type SubmissionHandler struct {
	service submissionService
}

// NewSubmissionHandler builds a new handler.
func NewSubmissionHandler(service submissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit godoc
// @Summary Submit a school event
// @Description Run the full submission workflow for a multipart form with an optional image
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param X-Draft-Session header string false "Draft session id"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var form dto.SubmitEventForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	req, fieldErrors := parseSubmitForm(form)
	if len(fieldErrors) > 0 {
		response.JSON(c, http.StatusBadRequest, dto.ValidateEventResponse{Valid: false, Errors: fieldErrors}, nil)
		return
	}

	image, err := h.imageFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sessionID := sessionIDFromRequest(c)
	event, err := h.service.Submit(c.Request.Context(), sessionID, req, image)
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrValidation.Code {
			fieldErrs := h.service.ValidateFields(req, false)
			response.JSON(c, http.StatusBadRequest, dto.ValidateEventResponse{Valid: false, Errors: fieldErrs}, nil)
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SubmitEventResponse{ID: event.ID, Status: string(event.Status)})
}

// Validate godoc
// @Summary Validate a submission payload
// @Description Check form fields without side effects, returning per-field messages
// @Tags Submissions
// @Accept json
// @Produce json
// @Param mode query string false "Validation mode: partial (default) or gating"
// @Param payload body dto.SubmitEventForm true "Form values"
// @Success 200 {object} response.Envelope
// @Router /events/validate [post]
func (h *SubmissionHandler) Validate(c *gin.Context) {
	var form dto.SubmitEventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}

	partial := c.Query("mode") != "gating"
	req, fieldErrors := parseSubmitForm(form)
	fieldErrors = append(fieldErrors, h.service.ValidateFields(req, partial)...)

	response.JSON(c, http.StatusOK, dto.ValidateEventResponse{
		Valid:  len(fieldErrors) == 0,
		Errors: fieldErrors,
	}, nil)
}

func (h *SubmissionHandler) imageFromForm(c *gin.Context) (*service.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile || strings.Contains(err.Error(), "no such file") {
			return nil, nil
		}
		// Non-multipart submits have no file part at all.
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded image")
	}
	return &service.ImageUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  file,
	}, nil
}

func sessionIDFromRequest(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.PostForm("draft_session")); id != "" {
		return id
	}
	return uuid.NewString()
}

// parseSubmitForm converts the wire form into the validated request. A bad
// date is reported as a field error so it lands inline like every other one.
func parseSubmitForm(form dto.SubmitEventForm) (dto.SubmitEventRequest, []dto.FieldError) {
	req := dto.SubmitEventRequest{
		Name:                form.Name,
		TimeRange:           form.TimeRange,
		Description:         form.Description,
		SchoolName:          form.SchoolName,
		ContactName:         form.ContactName,
		ContactEmail:        form.ContactEmail,
		Audience:            form.Audience,
		Location:            form.Location,
		EstimatedAttendance: form.EstimatedAttendance,
		Participants:        form.Participants,
		KeyHighlights:       form.KeyHighlights,
		SpecialGuests:       form.SpecialGuests,
		NotableAchievements: form.NotableAchievements,
		ImagePermission:     form.ImagePermission,
		SuggestedCaption:    form.SuggestedCaption,
		ContentHighlight:    form.ContentHighlight,
		MessageTone:         form.MessageTone,
	}

	var fieldErrors []dto.FieldError
	if form.EventDate != "" {
		date, err := time.Parse(eventDateLayout, form.EventDate)
		if err != nil {
			fieldErrors = append(fieldErrors, dto.FieldError{
				Field:   "event_date",
				Message: "must be a date in YYYY-MM-DD format",
			})
		} else {
			req.EventDate = date
		}
	}
	return req, fieldErrors
}
