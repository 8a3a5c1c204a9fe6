package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

func newPlacementRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func placementRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "course_id", "room_id", "exam_date", "start_time", "end_time",
		"exam_type", "status", "student_count", "notes", "linked_placement_id",
		"created_at", "updated_at", "course_code", "course_name", "department_id",
		"instructor_id", "cohort_year", "room_name", "faculty_name",
	})
}

func TestPlacementRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newPlacementRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_placements")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	placement := &models.ExamPlacement{
		CourseID:  "course-1",
		RoomID:    "room-1",
		ExamDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "11:00",
		ExamType:  "final",
		Status:    models.PlacementPlanned,
	}
	require.NoError(t, repo.Create(context.Background(), placement))
	require.NotEmpty(t, placement.ID)
	require.False(t, placement.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryListByRoomAndDate(t *testing.T) {
	db, mock, cleanup := newPlacementRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := placementRows().AddRow(
		"p1", "course-1", "room-1", date, "09:00", "11:00",
		"final", "planned", 60, "", nil,
		time.Now(), time.Now(), "CSE101", "Algorithms", "dept-1",
		"teacher-1", 2, "Hall A", "Engineering",
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.id, p.course_id")).
		WithArgs("room-1", date).
		WillReturnRows(rows)

	placements, err := repo.ListByRoomAndDate(context.Background(), "room-1", date)
	require.NoError(t, err)
	require.Len(t, placements, 1)
	require.Equal(t, "p1", placements[0].ID)
	require.NotNil(t, placements[0].CourseCode)
	require.Equal(t, "CSE101", *placements[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryListActiveByCourseFiltersExamType(t *testing.T) {
	db, mock, cleanup := newPlacementRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("p.course_id = $1")).
		WithArgs("course-1", "final").
		WillReturnRows(placementRows())

	placements, err := repo.ListActiveByCourse(context.Background(), "course-1", "final")
	require.NoError(t, err)
	require.Empty(t, placements)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryDeletePlanned(t *testing.T) {
	db, mock, cleanup := newPlacementRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_placements WHERE status = 'planned'")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeletePlanned(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryDeletePlannedBounded(t *testing.T) {
	db, mock, cleanup := newPlacementRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("AND exam_date BETWEEN $1 AND $2")).
		WithArgs(from, to).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeletePlanned(context.Background(), &from, &to)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
