package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/service"
	"github.com/school-spotlight/events-api/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, format service.ExportFormat, statuses []models.EventStatus) (*service.ExportResult, error)
}

// ExportHandler streams event listings as downloadable files.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// ExportCSV godoc
// @Summary Export events as CSV
// @Tags Exports
// @Produce text/csv
// @Param status query string false "Comma-separated statuses, defaults to published"
// @Success 200 {file} file
// @Router /admin/exports/events.csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.render(c, service.ExportFormatCSV)
}

// ExportPDF godoc
// @Summary Export events as PDF
// @Tags Exports
// @Produce application/pdf
// @Param status query string false "Comma-separated statuses, defaults to published"
// @Success 200 {file} file
// @Router /admin/exports/events.pdf [get]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.render(c, service.ExportFormatPDF)
}

func (h *ExportHandler) render(c *gin.Context, format service.ExportFormat) {
	var statuses []models.EventStatus
	for _, raw := range strings.Split(c.Query("status"), ",") {
		status := models.EventStatus(strings.ToLower(strings.TrimSpace(raw)))
		switch status {
		case models.EventStatusPending, models.EventStatusApproved, models.EventStatusPublished:
			statuses = append(statuses, status)
		}
	}

	result, err := h.service.Generate(c.Request.Context(), format, statuses)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
