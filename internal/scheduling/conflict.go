package scheduling

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

// ConflictKind identifies the first violated rule for a candidate placement.
type ConflictKind string

const (
	ConflictNone       ConflictKind = ""
	ConflictRoom       ConflictKind = "ROOM"
	ConflictStudent    ConflictKind = "STUDENT"
	ConflictInstructor ConflictKind = "INSTRUCTOR"
)

// Candidate describes a tentative placement under validation.
type Candidate struct {
	CourseID     string
	RoomID       string
	Date         time.Time
	Interval     TimeSlot
	DepartmentID string
	CohortYear   *int
	InstructorID *string
}

// PlacementSource exposes the placement lookups the conflict chain needs.
// Implementations must return only non-cancelled placements.
type PlacementSource interface {
	ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]models.ExamPlacement, error)
	ListByDepartmentAndDate(ctx context.Context, departmentID string, date time.Time) ([]models.ExamPlacement, error)
	ListByInstructorAndDate(ctx context.Context, instructorID string, date time.Time) ([]models.ExamPlacement, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]models.ExamPlacement, error)
}

// EnrollmentSource resolves the enrolled student set of a course.
type EnrollmentSource interface {
	StudentIDs(ctx context.Context, courseID string) ([]string, error)
}

// StudentConflictStrategy decides whether a candidate collides with another
// exam on the student dimension. Two implementations exist: the precise
// enrollment intersection and the coarser department/cohort heuristic used
// when real enrollment data is unavailable.
type StudentConflictStrategy interface {
	Name() string
	Conflicts(ctx context.Context, cand Candidate) (bool, error)
}

// Checker runs the ordered conflict chain: room, then students, then
// instructor. The first violation wins; the check has no side effects.
type Checker struct {
	placements PlacementSource
	students   StudentConflictStrategy
}

// NewChecker builds a conflict checker around a placement source and the
// configured student strategy.
func NewChecker(placements PlacementSource, students StudentConflictStrategy) *Checker {
	return &Checker{placements: placements, students: students}
}

// StrategyName reports the active student conflict strategy.
func (c *Checker) StrategyName() string {
	if c.students == nil {
		return ""
	}
	return c.students.Name()
}

// Check evaluates the full conflict chain for the candidate.
func (c *Checker) Check(ctx context.Context, cand Candidate) (ConflictKind, error) {
	busy, err := c.RoomBusy(ctx, cand.RoomID, cand.Date, cand.Interval)
	if err != nil {
		return ConflictNone, err
	}
	if busy {
		return ConflictRoom, nil
	}
	return c.CheckStudentsAndInstructor(ctx, cand)
}

// CheckStudentsAndInstructor evaluates the chain without the room dimension.
// Used by the room-combination pass, where each member room has already been
// verified free.
func (c *Checker) CheckStudentsAndInstructor(ctx context.Context, cand Candidate) (ConflictKind, error) {
	if c.students != nil {
		conflict, err := c.students.Conflicts(ctx, cand)
		if err != nil {
			return ConflictNone, err
		}
		if conflict {
			return ConflictStudent, nil
		}
	}
	conflict, err := c.instructorBusy(ctx, cand)
	if err != nil {
		return ConflictNone, err
	}
	if conflict {
		return ConflictInstructor, nil
	}
	return ConflictNone, nil
}

// RoomBusy reports whether another active exam occupies the room in the
// candidate interval. Exposed separately so the room allocator can probe
// availability without triggering the student and instructor dimensions.
func (c *Checker) RoomBusy(ctx context.Context, roomID string, date time.Time, interval TimeSlot) (bool, error) {
	existing, err := c.placements.ListByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return false, err
	}
	return anyOverlap(existing, interval, ""), nil
}

func (c *Checker) instructorBusy(ctx context.Context, cand Candidate) (bool, error) {
	if cand.InstructorID == nil || *cand.InstructorID == "" {
		return false, nil
	}
	existing, err := c.placements.ListByInstructorAndDate(ctx, *cand.InstructorID, cand.Date)
	if err != nil {
		return false, err
	}
	return anyOverlap(existing, cand.Interval, cand.CourseID), nil
}

// anyOverlap reports whether any placement overlaps the interval, optionally
// ignoring placements belonging to excludeCourseID.
func anyOverlap(placements []models.ExamPlacement, interval TimeSlot, excludeCourseID string) bool {
	return lo.SomeBy(placements, func(p models.ExamPlacement) bool {
		if excludeCourseID != "" && p.CourseID == excludeCourseID {
			return false
		}
		slot, err := placementInterval(p)
		if err != nil {
			return false
		}
		return slot.Overlaps(interval)
	})
}

func placementInterval(p models.ExamPlacement) (TimeSlot, error) {
	start, err := ParseClock(p.StartTime)
	if err != nil {
		return TimeSlot{}, err
	}
	end, err := ParseClock(p.EndTime)
	if err != nil {
		return TimeSlot{}, err
	}
	return TimeSlot{Start: start, End: end}, nil
}

// --- Cohort heuristic strategy ---

// CohortStrategy flags a conflict when another exam in the same department
// and cohort year overlaps the candidate interval. A placement with an
// unknown cohort year conflicts with every year of its department. This is a
// deliberate over-approximation for deployments without enrollment data and
// can produce false positives for disjoint student sets.
type CohortStrategy struct {
	placements PlacementSource
}

// NewCohortStrategy builds the department/cohort-year heuristic.
func NewCohortStrategy(placements PlacementSource) *CohortStrategy {
	return &CohortStrategy{placements: placements}
}

// Name implements StudentConflictStrategy.
func (s *CohortStrategy) Name() string { return "cohort" }

// Conflicts implements StudentConflictStrategy.
func (s *CohortStrategy) Conflicts(ctx context.Context, cand Candidate) (bool, error) {
	if cand.DepartmentID == "" {
		return false, nil
	}
	existing, err := s.placements.ListByDepartmentAndDate(ctx, cand.DepartmentID, cand.Date)
	if err != nil {
		return false, err
	}
	for _, p := range existing {
		if p.CourseID == cand.CourseID {
			continue
		}
		slot, err := placementInterval(p)
		if err != nil || !slot.Overlaps(cand.Interval) {
			continue
		}
		if cand.CohortYear == nil || p.CourseYear == nil || *cand.CohortYear == *p.CourseYear {
			return true, nil
		}
	}
	return false, nil
}

// --- Enrollment intersection strategy ---

// EnrollmentIndex lazily caches enrolled-student sets per course for the
// duration of one scheduling run.
type EnrollmentIndex struct {
	source EnrollmentSource
	cache  map[string]map[string]struct{}
}

// NewEnrollmentIndex builds an empty per-run index.
func NewEnrollmentIndex(source EnrollmentSource) *EnrollmentIndex {
	return &EnrollmentIndex{source: source, cache: make(map[string]map[string]struct{})}
}

// Students returns the enrolled-student set for the course, fetching it on
// first access.
func (i *EnrollmentIndex) Students(ctx context.Context, courseID string) (map[string]struct{}, error) {
	if set, ok := i.cache[courseID]; ok {
		return set, nil
	}
	ids, err := i.source.StudentIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	i.cache[courseID] = set
	return set, nil
}

// EnrollmentStrategy flags a conflict when any student is enrolled in both
// the candidate course and another course with an overlapping exam on the
// same date.
type EnrollmentStrategy struct {
	placements PlacementSource
	index      *EnrollmentIndex
}

// NewEnrollmentStrategy builds the precise enrollment-intersection strategy.
func NewEnrollmentStrategy(placements PlacementSource, index *EnrollmentIndex) *EnrollmentStrategy {
	return &EnrollmentStrategy{placements: placements, index: index}
}

// Name implements StudentConflictStrategy.
func (s *EnrollmentStrategy) Name() string { return "enrollment" }

// Conflicts implements StudentConflictStrategy.
func (s *EnrollmentStrategy) Conflicts(ctx context.Context, cand Candidate) (bool, error) {
	existing, err := s.placements.ListActiveByDate(ctx, cand.Date)
	if err != nil {
		return false, err
	}
	overlapping := lo.Filter(existing, func(p models.ExamPlacement, _ int) bool {
		if p.CourseID == cand.CourseID {
			return false
		}
		slot, err := placementInterval(p)
		return err == nil && slot.Overlaps(cand.Interval)
	})
	if len(overlapping) == 0 {
		return false, nil
	}

	own, err := s.index.Students(ctx, cand.CourseID)
	if err != nil {
		return false, err
	}
	if len(own) == 0 {
		return false, nil
	}
	// Linked rows of one multi-room exam share a course id; dedupe so each
	// course is intersected once.
	courseIDs := lo.Uniq(lo.Map(overlapping, func(p models.ExamPlacement, _ int) string {
		return p.CourseID
	}))
	for _, courseID := range courseIDs {
		other, err := s.index.Students(ctx, courseID)
		if err != nil {
			return false, err
		}
		if intersects(own, other) {
			return true, nil
		}
	}
	return false, nil
}

func intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}
