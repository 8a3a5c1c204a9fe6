package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

const courseColumns = `c.id, c.department_id, c.instructor_id, c.code, c.name, c.cohort_year, c.student_count, c.exam_type, c.exam_duration, c.has_exam, c.created_at, c.updated_at, d.name AS department_name, i.full_name AS instructor_name`

const courseJoins = ` FROM courses c LEFT JOIN departments d ON d.id = c.department_id LEFT JOIN instructors i ON i.id = c.instructor_id`

// CourseRepository provides read access to course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListUnscheduled returns exam-bearing courses without an active placement
// for the exam type, optionally filtered by department.
func (r *CourseRepository) ListUnscheduled(ctx context.Context, examType string, departmentID *string) ([]models.Course, error) {
	query := "SELECT " + courseColumns + courseJoins + ` WHERE c.has_exam = TRUE AND NOT EXISTS (SELECT 1 FROM exam_placements p WHERE p.course_id = c.id AND p.exam_type = $1 AND p.status <> 'cancelled')`
	args := []interface{}{examType}
	if departmentID != nil && *departmentID != "" {
		query += " AND c.department_id = $2"
		args = append(args, *departmentID)
	}
	query += " ORDER BY c.code ASC"

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list unscheduled courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := "SELECT " + courseColumns + courseJoins + " WHERE c.id = $1"
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}
