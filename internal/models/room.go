package models

import "time"

// Room represents an exam-capable room. Read-only to the engine.
type Room struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Suitable  bool      `db:"suitable" json:"suitable"`
	RoomType  *string   `db:"room_type" json:"room_type,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	FacultyName *string `db:"faculty_name" json:"faculty_name,omitempty"`
}
