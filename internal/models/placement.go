package models

import "time"

// PlacementStatus is the lifecycle state of an exam placement.
type PlacementStatus string

const (
	PlacementPlanned   PlacementStatus = "planned"
	PlacementConfirmed PlacementStatus = "confirmed"
	PlacementCancelled PlacementStatus = "cancelled"
)

// ExamPlacement assigns a course's exam to a room, date and time interval.
// A multi-room exam is stored as one primary row carrying the full student
// count plus one linked row per extra room with StudentCount = 0, so seat
// totals are never double counted.
type ExamPlacement struct {
	ID                string          `db:"id" json:"id"`
	CourseID          string          `db:"course_id" json:"course_id"`
	RoomID            string          `db:"room_id" json:"room_id"`
	ExamDate          time.Time       `db:"exam_date" json:"exam_date"`
	StartTime         string          `db:"start_time" json:"start_time"`
	EndTime           string          `db:"end_time" json:"end_time"`
	ExamType          string          `db:"exam_type" json:"exam_type"`
	Status            PlacementStatus `db:"status" json:"status"`
	StudentCount      int             `db:"student_count" json:"student_count"`
	Notes             string          `db:"notes" json:"notes"`
	LinkedPlacementID *string         `db:"linked_placement_id" json:"linked_placement_id,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`

	CourseCode   *string `db:"course_code" json:"course_code,omitempty"`
	CourseName   *string `db:"course_name" json:"course_name,omitempty"`
	RoomName     *string `db:"room_name" json:"room_name,omitempty"`
	FacultyName  *string `db:"faculty_name" json:"faculty_name,omitempty"`
	DepartmentID *string `db:"department_id" json:"department_id,omitempty"`
	InstructorID *string `db:"instructor_id" json:"instructor_id,omitempty"`
	CourseYear   *int    `db:"cohort_year" json:"cohort_year,omitempty"`
}

// Active reports whether the placement still blocks other exams.
func (p ExamPlacement) Active() bool {
	return p.Status != PlacementCancelled
}
