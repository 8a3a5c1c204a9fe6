package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-planner-api/internal/models"
	"github.com/noah-isme/exam-planner-api/pkg/errors"
	"github.com/noah-isme/exam-planner-api/pkg/export"
)

// ExportFormat selects the timetable export encoding.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

type placementLister interface {
	ListAll(ctx context.Context) ([]models.ExamPlacement, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.ExamPlacement, error)
}

// ExportService renders the persisted timetable as CSV or PDF.
type ExportService struct {
	placements placementLister
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService wires exporter dependencies.
func NewExportService(placements placementLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		placements: placements,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// ExportResult carries the rendered document and its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Timetable renders active placements, optionally bounded by a date range.
func (s *ExportService) Timetable(ctx context.Context, format ExportFormat, from, to *time.Time) (*ExportResult, error) {
	var (
		placements []models.ExamPlacement
		err        error
	)
	if from != nil && to != nil {
		placements, err = s.placements.ListBetween(ctx, *from, *to)
	} else {
		placements, err = s.placements.ListAll(ctx)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load placements for export")
	}

	rows := make([]export.TimetableRow, 0, len(placements))
	for _, p := range placements {
		if !p.Active() {
			continue
		}
		rows = append(rows, timetableRow(p))
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportCSV:
		content, err := s.csv.Render(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render CSV timetable")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    "exam-timetable-" + stamp + ".csv",
		}, nil
	case ExportPDF:
		content, err := s.pdf.Render(rows, "Exam Timetable")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render PDF timetable")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    "exam-timetable-" + stamp + ".pdf",
		}, nil
	default:
		return nil, errors.Clone(errors.ErrValidation, "format must be csv or pdf")
	}
}

func timetableRow(p models.ExamPlacement) export.TimetableRow {
	return export.TimetableRow{
		CourseCode: deref(p.CourseCode),
		CourseName: deref(p.CourseName),
		Room:       deref(p.RoomName),
		Faculty:    deref(p.FacultyName),
		Date:       p.ExamDate.Format("2006-01-02"),
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		ExamType:   p.ExamType,
		Status:     string(p.Status),
		Students:   p.StudentCount,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
