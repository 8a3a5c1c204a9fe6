package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

const placementColumns = `p.id, p.course_id, p.room_id, p.exam_date, p.start_time, p.end_time, p.exam_type, p.status, p.student_count, p.notes, p.linked_placement_id, p.created_at, p.updated_at, c.code AS course_code, c.name AS course_name, c.department_id AS department_id, c.instructor_id AS instructor_id, c.cohort_year AS cohort_year, r.name AS room_name, f.name AS faculty_name`

const placementJoins = ` FROM exam_placements p JOIN courses c ON c.id = p.course_id JOIN rooms r ON r.id = p.room_id LEFT JOIN faculties f ON f.id = r.faculty_id`

// PlacementRepository provides persistence for exam placements.
type PlacementRepository struct {
	db *sqlx.DB
}

// NewPlacementRepository creates a new placement repository.
func NewPlacementRepository(db *sqlx.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

// Create stores a new exam placement.
func (r *PlacementRepository) Create(ctx context.Context, placement *models.ExamPlacement) error {
	if placement.ID == "" {
		placement.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if placement.CreatedAt.IsZero() {
		placement.CreatedAt = now
	}
	placement.UpdatedAt = now

	const query = `INSERT INTO exam_placements (id, course_id, room_id, exam_date, start_time, end_time, exam_type, status, student_count, notes, linked_placement_id, created_at, updated_at) VALUES (:id, :course_id, :room_id, :exam_date, :start_time, :end_time, :exam_type, :status, :student_count, :notes, :linked_placement_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, placement); err != nil {
		return fmt.Errorf("create placement: %w", err)
	}
	return nil
}

// ListByRoomAndDate returns active placements occupying the room on a date.
func (r *PlacementRepository) ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE p.room_id = $1 AND p.exam_date = $2 AND p.status <> 'cancelled' ORDER BY p.start_time ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, roomID, date); err != nil {
		return nil, fmt.Errorf("list placements by room and date: %w", err)
	}
	return placements, nil
}

// ListByDepartmentAndDate returns active placements for courses of a
// department on a date.
func (r *PlacementRepository) ListByDepartmentAndDate(ctx context.Context, departmentID string, date time.Time) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE c.department_id = $1 AND p.exam_date = $2 AND p.status <> 'cancelled' ORDER BY p.start_time ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, departmentID, date); err != nil {
		return nil, fmt.Errorf("list placements by department and date: %w", err)
	}
	return placements, nil
}

// ListByInstructorAndDate returns active placements taught by an instructor
// on a date.
func (r *PlacementRepository) ListByInstructorAndDate(ctx context.Context, instructorID string, date time.Time) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE c.instructor_id = $1 AND p.exam_date = $2 AND p.status <> 'cancelled' ORDER BY p.start_time ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, instructorID, date); err != nil {
		return nil, fmt.Errorf("list placements by instructor and date: %w", err)
	}
	return placements, nil
}

// ListActiveByDate returns every active placement on a date.
func (r *PlacementRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE p.exam_date = $1 AND p.status <> 'cancelled' ORDER BY p.start_time ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, date); err != nil {
		return nil, fmt.Errorf("list active placements by date: %w", err)
	}
	return placements, nil
}

// ListActiveByCourse returns active placements of a course, optionally
// narrowed to one exam type.
func (r *PlacementRepository) ListActiveByCourse(ctx context.Context, courseID, examType string) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE p.course_id = $1 AND p.status <> 'cancelled'`
	args := []interface{}{courseID}
	if examType != "" {
		query += " AND p.exam_type = $2"
		args = append(args, examType)
	}
	query += " ORDER BY p.exam_date ASC, p.start_time ASC"

	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, args...); err != nil {
		return nil, fmt.Errorf("list active placements by course: %w", err)
	}
	return placements, nil
}

// ListBetween returns active placements within the inclusive date range,
// ordered for display and export.
func (r *PlacementRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` WHERE p.exam_date BETWEEN $1 AND $2 AND p.status <> 'cancelled' ORDER BY p.exam_date ASC, p.start_time ASC, course_code ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query, from, to); err != nil {
		return nil, fmt.Errorf("list placements between dates: %w", err)
	}
	return placements, nil
}

// ListAll returns every placement regardless of status, for statistics.
func (r *PlacementRepository) ListAll(ctx context.Context) ([]models.ExamPlacement, error) {
	query := "SELECT " + placementColumns + placementJoins + ` ORDER BY p.exam_date ASC, p.start_time ASC`
	var placements []models.ExamPlacement
	if err := r.db.SelectContext(ctx, &placements, query); err != nil {
		return nil, fmt.Errorf("list all placements: %w", err)
	}
	return placements, nil
}

// DeletePlanned removes planned (never confirmed) placements, optionally
// bounded by an inclusive date range. It returns the number of rows deleted.
func (r *PlacementRepository) DeletePlanned(ctx context.Context, from, to *time.Time) (int, error) {
	query := `DELETE FROM exam_placements WHERE status = 'planned'`
	var args []interface{}
	if from != nil && to != nil {
		query += " AND exam_date BETWEEN $1 AND $2"
		args = append(args, *from, *to)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete planned placements: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete planned placements: %w", err)
	}
	return int(affected), nil
}
