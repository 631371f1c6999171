package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.EventRecord, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.EventRecord, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler exposes the admin dashboard event endpoints.
type EventHandler struct {
	service eventService
}

// NewEventHandler builds a new handler.
func NewEventHandler(service eventService) *EventHandler {
	return &EventHandler{service: service}
}

// List godoc
// @Summary List events
// @Description List events with status filter and pagination
// @Tags Events
// @Produce json
// @Param status query string false "Comma-separated statuses (pending, approved, published)"
// @Param school query string false "School name filter"
// @Param order query string false "Sort order: event_date_asc or created_at_desc"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		School:   strings.TrimSpace(c.Query("school")),
		Order:    models.EventOrder(c.DefaultQuery("order", string(models.OrderByCreatedAtDesc))),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	for _, raw := range strings.Split(c.Query("status"), ",") {
		status := models.EventStatus(strings.ToLower(strings.TrimSpace(raw)))
		switch status {
		case models.EventStatusPending, models.EventStatusApproved, models.EventStatusPublished:
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	events, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Get godoc
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// UpdateStatus godoc
// @Summary Advance event status
// @Description Approve a pending event or publish an approved one
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param payload body dto.UpdateEventStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/events/{id}/status [patch]
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	event, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete event
// @Tags Events
// @Produce json
// @Param id path string true "Event id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
