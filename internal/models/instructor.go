package models

import (
	"time"

	"github.com/lib/pq"
)

// Instructor represents a teaching staff record. AvailableDays holds raw
// weekday names as entered (possibly locale-variant spellings); the engine
// normalises them before use. An empty set means available every weekday.
type Instructor struct {
	ID            string         `db:"id" json:"id"`
	DepartmentID  string         `db:"department_id" json:"department_id"`
	FullName      string         `db:"full_name" json:"full_name"`
	Title         *string        `db:"title" json:"title,omitempty"`
	Email         *string        `db:"email" json:"email,omitempty"`
	AvailableDays pq.StringArray `db:"available_days" json:"available_days"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
