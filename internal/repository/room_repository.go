package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

const roomColumns = `r.id, r.faculty_id, r.name, r.capacity, r.suitable, r.room_type, r.created_at, r.updated_at, f.name AS faculty_name`

const roomJoins = ` FROM rooms r LEFT JOIN faculties f ON f.id = r.faculty_id`

// RoomRepository provides read access to room records.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListSuitable returns exam-capable rooms ordered by capacity descending.
func (r *RoomRepository) ListSuitable(ctx context.Context) ([]models.Room, error) {
	query := "SELECT " + roomColumns + roomJoins + " WHERE r.suitable = TRUE ORDER BY r.capacity DESC"
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list suitable rooms: %w", err)
	}
	return rooms, nil
}

// FindByID fetches a room by ID.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := "SELECT " + roomColumns + roomJoins + " WHERE r.id = $1"
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}
