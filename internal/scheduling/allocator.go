package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

// RoomAvailability answers whether a room is occupied in a candidate
// interval. Satisfied by *Checker.
type RoomAvailability interface {
	RoomBusy(ctx context.Context, roomID string, date time.Time, interval TimeSlot) (bool, error)
}

// Allocator resolves seating capacity against the room pool: a single room
// when one suffices, otherwise a greedy multi-room combination.
type Allocator struct {
	availability RoomAvailability
}

// NewAllocator builds a room allocator.
func NewAllocator(availability RoomAvailability) *Allocator {
	return &Allocator{availability: availability}
}

// SufficientRooms filters the pool down to suitable rooms that can seat the
// course alone, ordered ascending by capacity so the smallest adequate room
// is tried first and large rooms stay free for later large courses.
func (a *Allocator) SufficientRooms(rooms []models.Room, requiredSeats int) []models.Room {
	sufficient := lo.Filter(rooms, func(r models.Room, _ int) bool {
		return r.Suitable && r.Capacity >= requiredSeats
	})
	sort.SliceStable(sufficient, func(i, j int) bool {
		return sufficient[i].Capacity < sufficient[j].Capacity
	})
	return sufficient
}

// SingleRoom returns the smallest-capacity suitable room that can seat the
// course and is free in the candidate interval, or nil when every sufficient
// room is occupied (or none exists).
func (a *Allocator) SingleRoom(ctx context.Context, rooms []models.Room, requiredSeats int, date time.Time, interval TimeSlot) (*models.Room, error) {
	for _, room := range a.SufficientRooms(rooms, requiredSeats) {
		busy, err := a.availability.RoomBusy(ctx, room.ID, date, interval)
		if err != nil {
			return nil, err
		}
		if !busy {
			r := room
			return &r, nil
		}
	}
	return nil, nil
}

// Combination greedily accumulates free rooms by descending capacity until
// the running total covers requiredSeats. It returns nil when the pool's free
// capacity cannot cover the course; the first room of a non-nil result is the
// primary room of the combined exam.
func (a *Allocator) Combination(ctx context.Context, rooms []models.Room, requiredSeats int, date time.Time, interval TimeSlot) ([]models.Room, error) {
	candidates := lo.Filter(rooms, func(r models.Room, _ int) bool {
		return r.Suitable
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity > candidates[j].Capacity
	})

	var selected []models.Room
	total := 0
	for _, room := range candidates {
		busy, err := a.availability.RoomBusy(ctx, room.ID, date, interval)
		if err != nil {
			return nil, err
		}
		if busy {
			continue
		}
		selected = append(selected, room)
		total += room.Capacity
		if total >= requiredSeats {
			return selected, nil
		}
	}
	return nil, nil
}
