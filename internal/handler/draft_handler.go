package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/response"
)

type draftService interface {
	Load(ctx context.Context, sessionID string) dto.DraftResponse
	Save(ctx context.Context, sessionID string, values models.DraftValues) error
	Clear(ctx context.Context, sessionID string)
}

// DraftHandler exposes draft persistence for the submission form.
type DraftHandler struct {
	service draftService
}

// NewDraftHandler builds a new handler.
func NewDraftHandler(service draftService) *DraftHandler {
	return &DraftHandler{service: service}
}

// Get godoc
// @Summary Restore a draft
// @Description Return the saved draft for a session, empty when none exists
// @Tags Drafts
// @Produce json
// @Param sessionID path string true "Draft session id"
// @Success 200 {object} response.Envelope
// @Router /drafts/{sessionID} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Load(c.Request.Context(), sessionID), nil)
}

// Save godoc
// @Summary Save a draft
// @Description Overwrite the draft for a session with the current form values
// @Tags Drafts
// @Accept json
// @Produce json
// @Param sessionID path string true "Draft session id"
// @Param payload body dto.SaveDraftRequest true "Draft values"
// @Success 204 {object} response.Envelope
// @Router /drafts/{sessionID} [put]
func (h *DraftHandler) Save(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	if err := h.service.Save(c.Request.Context(), sessionID, req.Values); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Discard a draft
// @Description Remove the saved draft and cached image URL for a session
// @Tags Drafts
// @Produce json
// @Param sessionID path string true "Draft session id"
// @Success 204 {object} response.Envelope
// @Router /drafts/{sessionID} [delete]
func (h *DraftHandler) Clear(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}
	h.service.Clear(c.Request.Context(), sessionID)
	response.NoContent(c)
}

func sessionParam(c *gin.Context) (string, bool) {
	sessionID := strings.TrimSpace(c.Param("sessionID"))
	if sessionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session id required"))
		return "", false
	}
	return sessionID, true
}
