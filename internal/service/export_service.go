package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/pkg/export"
	appErrors "github.com/school-spotlight/events-api/pkg/errors"
)

type exportEventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.EventRecord, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered export for inline download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders dashboard event listings as downloadable files.
type ExportService struct {
	repo   exportEventRepository
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo exportEventRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

const exportPageSize = 500

// Generate builds the dataset for the requested statuses and renders it.
func (s *ExportService) Generate(ctx context.Context, format ExportFormat, statuses []models.EventStatus) (*ExportResult, error) {
	if len(statuses) == 0 {
		statuses = []models.EventStatus{models.EventStatusPublished}
	}
	filter := models.EventFilter{
		Statuses: statuses,
		Order:    models.OrderByEventDateAsc,
		Page:     1,
		PageSize: exportPageSize,
	}

	var events []models.EventRecord
	for {
		page, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect events for export")
		}
		events = append(events, page...)
		if len(events) >= total || len(page) == 0 {
			break
		}
		filter.Page++
	}

	dataset := buildEventDataset(events)
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("events-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "School Event Spotlight")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("events-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func buildEventDataset(events []models.EventRecord) export.Dataset {
	headers := []string{"Event", "Date", "Time", "School", "Audience", "Contact", "Status"}
	rows := make([]map[string]string, 0, len(events))
	for _, e := range events {
		row := map[string]string{
			"Event":    e.Name,
			"Date":     e.EventDate.Format("2006-01-02"),
			"Time":     e.TimeRange,
			"School":   e.SchoolName,
			"Audience": string(e.Audience),
			"Contact":  e.ContactName + " <" + e.ContactEmail + ">",
			"Status":   string(e.Status),
		}
		if e.EstimatedAttendance != nil {
			row["Audience"] = string(e.Audience) + " (~" + strconv.Itoa(*e.EstimatedAttendance) + ")"
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
