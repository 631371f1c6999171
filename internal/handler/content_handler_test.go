package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/school-spotlight/events-api/internal/dto"
	"github.com/school-spotlight/events-api/internal/models"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type contentServiceMock struct {
	getResp      *models.ContentTemplate
	getErr       error
	pendingResp  []models.ContentTemplate
	pendingErr   error
	reviewErr    error
	lastEventID  string
	lastLimit    int
	lastReviewID string
	lastReview   dto.ReviewContentRequest
	reviewCalled bool
}

func (m *contentServiceMock) GetForEvent(ctx context.Context, eventID string) (*models.ContentTemplate, error) {
	m.lastEventID = eventID
	return m.getResp, m.getErr
}

func (m *contentServiceMock) ListPending(ctx context.Context, limit int) ([]models.ContentTemplate, error) {
	m.lastLimit = limit
	return m.pendingResp, m.pendingErr
}

func (m *contentServiceMock) Review(ctx context.Context, templateID string, req dto.ReviewContentRequest) error {
	m.reviewCalled = true
	m.lastReviewID = templateID
	m.lastReview = req
	return m.reviewErr
}

func TestContentHandlerGetForEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contentServiceMock{
		getResp: &models.ContentTemplate{ID: "tmpl-1", EventID: "event-1"},
	}
	handler := NewContentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/events/event-1/content", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "event-1"}}

	handler.GetForEvent(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "event-1", mockSvc.lastEventID)
	assert.Contains(t, w.Body.String(), "tmpl-1")
}

func TestContentHandlerGetForEventNotReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contentServiceMock{getErr: appErrors.ErrTemplateNotReady}
	handler := NewContentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/events/event-1/content", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "event-1"}}

	handler.GetForEvent(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "TEMPLATE_NOT_READY")
}

func TestContentHandlerListPending(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contentServiceMock{
		pendingResp: []models.ContentTemplate{{ID: "tmpl-1"}},
	}
	handler := NewContentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/content/pending?limit=5", nil)
	c.Request = req

	handler.ListPending(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, mockSvc.lastLimit)
}

func TestContentHandlerReview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contentServiceMock{}
	handler := NewContentHandler(mockSvc)

	payload, _ := json.Marshal(dto.ReviewContentRequest{Verdict: "approved", Notes: "ship it"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/content/tmpl-1/review", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "tmpl-1"}}

	handler.Review(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.reviewCalled)
	assert.Equal(t, "tmpl-1", mockSvc.lastReviewID)
	assert.Equal(t, "approved", mockSvc.lastReview.Verdict)
}

func TestContentHandlerReviewInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &contentServiceMock{}
	handler := NewContentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/admin/content/tmpl-1/review", bytes.NewBufferString(`{"verdict":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "tmpl-1"}}

	handler.Review(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.reviewCalled)
}
