package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

func roomPool() []models.Room {
	return []models.Room{
		{ID: "big", Name: "Big Hall", Capacity: 200, Suitable: true},
		{ID: "mid", Name: "Mid Hall", Capacity: 80, Suitable: true},
		{ID: "small", Name: "Small Room", Capacity: 40, Suitable: true},
		{ID: "lab", Name: "Lab", Capacity: 150, Suitable: false},
	}
}

func TestSufficientRoomsAscendingAndSuitableOnly(t *testing.T) {
	allocator := NewAllocator(NewChecker(&memoryPlacements{}, nil))

	sufficient := allocator.SufficientRooms(roomPool(), 50)
	require.Len(t, sufficient, 2)
	assert.Equal(t, "mid", sufficient[0].ID, "smallest adequate room first")
	assert.Equal(t, "big", sufficient[1].ID)
}

func TestSingleRoomPicksSmallestFreeRoom(t *testing.T) {
	source := &memoryPlacements{}
	allocator := NewAllocator(NewChecker(source, nil))
	interval := TimeSlot{Start: 9 * 60, End: 11 * 60}

	room, err := allocator.SingleRoom(context.Background(), roomPool(), 50, examDate(), interval)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "mid", room.ID)

	// Occupy the mid hall; the allocator must fall through to the big hall.
	source.add(placed("other", "mid", "09:00", "11:00"))
	room, err = allocator.SingleRoom(context.Background(), roomPool(), 50, examDate(), interval)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "big", room.ID)
}

func TestSingleRoomNilWhenAllBusyOrTooSmall(t *testing.T) {
	source := &memoryPlacements{}
	source.add(placed("a", "mid", "09:00", "11:00"))
	source.add(placed("b", "big", "09:00", "11:00"))
	allocator := NewAllocator(NewChecker(source, nil))

	room, err := allocator.SingleRoom(context.Background(), roomPool(), 50, examDate(), TimeSlot{Start: 9 * 60, End: 11 * 60})
	require.NoError(t, err)
	assert.Nil(t, room)

	room, err = allocator.SingleRoom(context.Background(), roomPool(), 500, examDate(), TimeSlot{Start: 14 * 60, End: 16 * 60})
	require.NoError(t, err)
	assert.Nil(t, room)
}

func TestCombinationGreedyDescendingCapacity(t *testing.T) {
	allocator := NewAllocator(NewChecker(&memoryPlacements{}, nil))

	combo, err := allocator.Combination(context.Background(), roomPool(), 250, examDate(), TimeSlot{Start: 9 * 60, End: 11 * 60})
	require.NoError(t, err)
	require.Len(t, combo, 2)
	assert.Equal(t, "big", combo[0].ID, "primary room is the largest")
	assert.Equal(t, "mid", combo[1].ID)
}

func TestCombinationSkipsBusyRooms(t *testing.T) {
	source := &memoryPlacements{}
	source.add(placed("other", "big", "09:00", "11:00"))
	allocator := NewAllocator(NewChecker(source, nil))

	combo, err := allocator.Combination(context.Background(), roomPool(), 100, examDate(), TimeSlot{Start: 9 * 60, End: 11 * 60})
	require.NoError(t, err)
	require.Len(t, combo, 2)
	assert.Equal(t, "mid", combo[0].ID)
	assert.Equal(t, "small", combo[1].ID)
}

func TestCombinationNilWhenPoolTooSmall(t *testing.T) {
	allocator := NewAllocator(NewChecker(&memoryPlacements{}, nil))

	combo, err := allocator.Combination(context.Background(), roomPool(), 1000, examDate(), TimeSlot{Start: 9 * 60, End: 11 * 60})
	require.NoError(t, err)
	assert.Nil(t, combo, "unsuitable rooms must not count toward capacity")
}
