package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/repository"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/storage"
)

// fallbackTimeRange is used when both the submitted value and the configured
// default fail the pattern check. Repair over reject for this one field.
const fallbackTimeRange = "6:00 PM - 8:00 PM"

var timeRangePattern = regexp.MustCompile(`^\d{1,2}:\d{2} (AM|PM) - \d{1,2}:\d{2} (AM|PM)$`)

type submissionEventRepository interface {
	Create(ctx context.Context, event *models.EventRecord) error
	FindDuplicate(ctx context.Context, name string, date time.Time, schoolName string) (bool, error)
}

// ContentNotifier publishes domain notifications for the content automation.
type ContentNotifier interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type submissionMetrics interface {
	ObserveSubmission(outcome string)
	ObserveDuplicateFlagged()
}

// ImageUpload carries an optional event photo alongside the form fields.
type ImageUpload struct {
	Filename string
	Size     int64
	MimeType string
	Content  io.Reader
}

// SubmissionPolicy holds the configurable parts of the workflow.
type SubmissionPolicy struct {
	DuplicateCheck   bool
	DefaultTimeRange string
	MaxImageBytes    int64
	AllowedMIMEs     []string
}

// SubmissionService orchestrates the event submission workflow: guard, schema
// validation, optional image upload, advisory duplicate check, record
// creation and post-success cleanup.
type SubmissionService struct {
	repo      submissionEventRepository
	drafts    repository.DraftStore
	images    storage.ObjectStorage
	guard     *SubmissionGuard
	notifier  ContentNotifier
	metrics   submissionMetrics
	policy    SubmissionPolicy
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubmissionService constructs the service and registers the custom
// validations the submission schema depends on.
func NewSubmissionService(
	repo submissionEventRepository,
	drafts repository.DraftStore,
	images storage.ObjectStorage,
	guard *SubmissionGuard,
	notifier ContentNotifier,
	metrics submissionMetrics,
	policy SubmissionPolicy,
	validate *validator.Validate,
	logger *zap.Logger,
) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewSubmissionGuard()
	}
	svc := &SubmissionService{
		repo:      repo,
		drafts:    drafts,
		images:    images,
		guard:     guard,
		notifier:  notifier,
		metrics:   metrics,
		policy:    policy,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
		return models.ValidAudience(strings.ToLower(fl.Field().String()))
	})
	svc.validator.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		date, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		today := svc.now().UTC().Truncate(24 * time.Hour)
		return !date.UTC().Truncate(24 * time.Hour).Before(today)
	})
	return svc
}

// Submit runs one full workflow attempt for the given session. A denied guard
// acquisition returns ErrSubmissionInFlight with no side effects; every other
// failure releases the guard and retains the session's draft for retry.
func (s *SubmissionService) Submit(ctx context.Context, sessionID string, req dto.SubmitEventRequest, image *ImageUpload) (*models.EventRecord, error) {
	if !s.guard.TryAcquire(sessionID) {
		return nil, appErrors.ErrSubmissionInFlight
	}
	defer s.guard.Release(sessionID)

	attempt := NewSubmissionAttempt()
	event, err := s.run(ctx, attempt, sessionID, req, image)
	if err != nil {
		_ = attempt.Advance(StateFailed)
		s.observe("failure")
		return nil, err
	}
	s.observe("success")
	return event, nil
}

func (s *SubmissionService) run(ctx context.Context, attempt *SubmissionAttempt, sessionID string, req dto.SubmitEventRequest, image *ImageUpload) (*models.EventRecord, error) {
	if err := attempt.Advance(StateValidating); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission workflow error")
	}
	if fieldErrors := s.ValidateFields(req, false); len(fieldErrors) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "validation failed")
	}
	req.TimeRange = s.RepairTimeRange(req.TimeRange)
	// The duplicate check must see the same normalized values the record is
	// stored with, or padded whitespace would defeat the triple match.
	req.Name = strings.TrimSpace(req.Name)
	req.SchoolName = strings.TrimSpace(req.SchoolName)

	imageURL, err := s.resolveImageURL(ctx, attempt, sessionID, image)
	if err != nil {
		return nil, err
	}

	if s.policy.DuplicateCheck {
		if err := attempt.Advance(StateCheckingDuplicate); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission workflow error")
		}
		dup, err := s.repo.FindDuplicate(ctx, req.Name, req.EventDate, req.SchoolName)
		if err != nil {
			// Advisory check: backend flakiness must never block a
			// legitimate submission.
			s.logger.Warn("duplicate lookup failed, proceeding", zap.Error(err))
			dup = false
		}
		if dup {
			if s.metrics != nil {
				s.metrics.ObserveDuplicateFlagged()
			}
			return nil, appErrors.Clone(appErrors.ErrDuplicateEvent, "")
		}
	}

	if err := attempt.Advance(StateCreatingRecord); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission workflow error")
	}
	event := s.buildRecord(req, imageURL)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	if err := attempt.Advance(StateSucceeded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission workflow error")
	}

	s.cleanupSession(ctx, sessionID)
	s.notifyCreated(ctx, event)
	return event, nil
}

// resolveImageURL uploads the image when one is attached, reusing a cached
// URL from an earlier attempt in the same session so a retry after a failed
// record creation never re-uploads.
func (s *SubmissionService) resolveImageURL(ctx context.Context, attempt *SubmissionAttempt, sessionID string, image *ImageUpload) (string, error) {
	if cached, err := s.drafts.LoadImageURL(ctx, sessionID); err == nil && cached != "" {
		return cached, nil
	} else if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("image url cache read failed", zap.Error(err))
	}
	if image == nil {
		return "", nil
	}

	if err := attempt.Advance(StateUploadingImage); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission workflow error")
	}
	if s.policy.MaxImageBytes > 0 && image.Size > s.policy.MaxImageBytes {
		return "", appErrors.Clone(appErrors.ErrUploadTooLarge, "")
	}
	if len(s.policy.AllowedMIMEs) > 0 && !mimeAllowed(s.policy.AllowedMIMEs, image.MimeType) {
		return "", appErrors.Clone(appErrors.ErrUnsupportedFileType, "")
	}

	key := fmt.Sprintf("events/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(image.Filename)))
	url, err := s.images.Put(ctx, key, image.MimeType, image.Size, image.Content)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upload image")
	}
	// Cache immediately so a retry between upload and record creation
	// reuses this URL instead of uploading again.
	if err := s.drafts.SaveImageURL(ctx, sessionID, url); err != nil {
		s.logger.Warn("image url cache write failed", zap.Error(err))
	}
	return url, nil
}

func (s *SubmissionService) buildRecord(req dto.SubmitEventRequest, imageURL string) *models.EventRecord {
	event := &models.EventRecord{
		Name:            strings.TrimSpace(req.Name),
		EventDate:       req.EventDate,
		TimeRange:       req.TimeRange,
		Description:     req.Description,
		SchoolName:      strings.TrimSpace(req.SchoolName),
		ContactName:     strings.TrimSpace(req.ContactName),
		ContactEmail:    strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		Audience:        models.AudienceType(strings.ToLower(req.Audience)),
		ImagePermission: req.ImagePermission,
		Status:          models.EventStatusPending,
	}
	event.Location = optional(req.Location)
	event.EstimatedAttendance = req.EstimatedAttendance
	event.Participants = optional(req.Participants)
	event.KeyHighlights = optional(req.KeyHighlights)
	event.SpecialGuests = optional(req.SpecialGuests)
	event.NotableAchievements = optional(req.NotableAchievements)
	event.SuggestedCaption = optional(req.SuggestedCaption)
	event.ContentHighlight = optional(req.ContentHighlight)
	event.MessageTone = optional(req.MessageTone)
	if imageURL != "" {
		event.ImageURL = &imageURL
	}
	return event
}

// cleanupSession clears the form draft and image cache together after a
// terminal success. Either clear failing is non-fatal and not retried.
func (s *SubmissionService) cleanupSession(ctx context.Context, sessionID string) {
	if err := s.drafts.ClearDraft(ctx, sessionID); err != nil {
		s.logger.Warn("draft clear after submission failed", zap.Error(err))
	}
	if err := s.drafts.ClearImageURL(ctx, sessionID); err != nil {
		s.logger.Warn("image cache clear after submission failed", zap.Error(err))
	}
}

// notifyCreated tells the content automation about the new event. Publishing
// is fail-open: the record is already persisted and the automation also polls.
func (s *SubmissionService) notifyCreated(ctx context.Context, event *models.EventRecord) {
	if s.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"type":        "event.created",
		"event_id":    event.ID,
		"name":        event.Name,
		"school_name": event.SchoolName,
		"event_date":  event.EventDate.Format("2006-01-02"),
	}
	if err := s.notifier.Publish(ctx, "event.created", payload); err != nil {
		s.logger.Warn("event.created publish failed", zap.Error(err))
	}
}

func (s *SubmissionService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveSubmission(outcome)
	}
}

// RepairTimeRange applies the repair-over-reject policy: a value that does
// not match the expected pattern is replaced by the configured default, and a
// misconfigured default falls back to a known-good range.
func (s *SubmissionService) RepairTimeRange(value string) string {
	value = strings.TrimSpace(value)
	if timeRangePattern.MatchString(value) {
		return value
	}
	if timeRangePattern.MatchString(s.policy.DefaultTimeRange) {
		return s.policy.DefaultTimeRange
	}
	return fallbackTimeRange
}

// ValidateFields checks the submission schema. In partial mode (reactive,
// inline feedback) required-field violations on untouched fields are skipped;
// in gating mode every constraint applies.
func (s *SubmissionService) ValidateFields(req dto.SubmitEventRequest, partial bool) []dto.FieldError {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []dto.FieldError{{Field: "form", Message: "invalid submission payload"}}
	}

	fieldErrors := make([]dto.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if partial && fe.Tag() == "required" {
			continue
		}
		fieldErrors = append(fieldErrors, dto.FieldError{
			Field:   fieldName(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "audience":
		return "must be one of: students, parents, faculty, community, all"
	case "notpast":
		return "event date cannot be in the past"
	default:
		return "invalid value"
	}
}

var fieldNames = map[string]string{
	"Name":                "name",
	"EventDate":           "event_date",
	"TimeRange":           "time_range",
	"Description":         "description",
	"SchoolName":          "school_name",
	"ContactName":         "contact_name",
	"ContactEmail":        "contact_email",
	"Audience":            "audience",
	"Location":            "location",
	"EstimatedAttendance": "estimated_attendance",
	"Participants":        "participants",
	"KeyHighlights":       "key_highlights",
	"SpecialGuests":       "special_guests",
	"NotableAchievements": "notable_achievements",
	"SuggestedCaption":    "suggested_caption",
	"ContentHighlight":    "content_highlight",
	"MessageTone":         "message_tone",
}

func fieldName(structField string) string {
	if name, ok := fieldNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}

func mimeAllowed(allowed []string, mime string) bool {
	for _, m := range allowed {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
