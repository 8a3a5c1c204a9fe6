package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

func exportFixturePlacements() []models.ExamPlacement {
	code := "CSE101"
	name := "Algorithms"
	room := "Hall A"
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.ExamPlacement{
		{
			ID: "p1", CourseID: "c1", RoomID: "r1", ExamDate: date,
			StartTime: "09:00", EndTime: "11:00", ExamType: "final",
			Status: models.PlacementPlanned, StudentCount: 60,
			CourseCode: &code, CourseName: &name, RoomName: &room,
		},
		{
			ID: "p2", CourseID: "c2", RoomID: "r1", ExamDate: date,
			StartTime: "11:30", EndTime: "13:30", ExamType: "final",
			Status: models.PlacementCancelled, StudentCount: 40,
		},
	}
}

func TestExportServiceTimetableCSV(t *testing.T) {
	placements := &stubPlacements{rows: exportFixturePlacements()}
	svc := NewExportService(placements, zap.NewNop())

	result, err := svc.Timetable(context.Background(), ExportCSV, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	assert.Contains(t, body, "course_code")
	assert.Contains(t, body, "CSE101")
	assert.NotContains(t, body, "cancelled", "cancelled placements must not be exported")
}

func TestExportServiceTimetablePDF(t *testing.T) {
	placements := &stubPlacements{rows: exportFixturePlacements()}
	svc := NewExportService(placements, zap.NewNop())

	result, err := svc.Timetable(context.Background(), ExportPDF, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubPlacements{}, zap.NewNop())

	_, err := svc.Timetable(context.Background(), ExportFormat("xlsx"), nil, nil)
	require.Error(t, err)
}
