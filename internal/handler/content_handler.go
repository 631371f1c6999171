package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/response"
)

type contentService interface {
	GetForEvent(ctx context.Context, eventID string) (*models.ContentTemplate, error)
	ListPending(ctx context.Context, limit int) ([]models.ContentTemplate, error)
	Review(ctx context.Context, templateID string, req dto.ReviewContentRequest) error
}

// ContentHandler exposes the marketing-copy review endpoints.
type ContentHandler struct {
	service contentService
}

// NewContentHandler builds a new handler.
func NewContentHandler(service contentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetForEvent godoc
// @Summary Get generated content for an event
// @Description Return the content template, 404 while generation is pending
// @Tags Content
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id}/content [get]
func (h *ContentHandler) GetForEvent(c *gin.Context) {
	template, err := h.service.GetForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, template, nil)
}

// ListPending godoc
// @Summary List templates awaiting review
// @Tags Content
// @Produce json
// @Param limit query int false "Maximum templates to return"
// @Success 200 {object} response.Envelope
// @Router /admin/content/pending [get]
func (h *ContentHandler) ListPending(c *gin.Context) {
	templates, err := h.service.ListPending(c.Request.Context(), queryInt(c, "limit", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates, nil)
}

// Review godoc
// @Summary Record a review verdict
// @Description Approve or reject a content template with optional notes
// @Tags Content
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param payload body dto.ReviewContentRequest true "Verdict payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/content/{id}/review [post]
func (h *ContentHandler) Review(c *gin.Context) {
	var req dto.ReviewContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}
	if err := h.service.Review(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
