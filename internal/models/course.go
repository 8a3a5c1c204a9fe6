package models

import "time"

// ExamDurations enumerates the allowed exam lengths in minutes.
var ExamDurations = []int{30, 60, 90, 120}

// ValidExamDuration reports whether d is one of the enumerated durations.
func ValidExamDuration(d int) bool {
	for _, v := range ExamDurations {
		if v == d {
			return true
		}
	}
	return false
}

// Course represents a course record with its exam metadata. The engine only
// reads courses; course management lives elsewhere.
type Course struct {
	ID           string    `db:"id" json:"id"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	InstructorID *string   `db:"instructor_id" json:"instructor_id,omitempty"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	CohortYear   *int      `db:"cohort_year" json:"cohort_year,omitempty"`
	StudentCount int       `db:"student_count" json:"student_count"`
	ExamType     string    `db:"exam_type" json:"exam_type"`
	ExamDuration int       `db:"exam_duration" json:"exam_duration"`
	HasExam      bool      `db:"has_exam" json:"has_exam"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
	InstructorName *string `db:"instructor_name" json:"instructor_name,omitempty"`
}
