package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-planner-api/internal/dto"
	"github.com/noah-isme/exam-planner-api/internal/models"
	"github.com/noah-isme/exam-planner-api/internal/scheduling"
	"github.com/noah-isme/exam-planner-api/pkg/config"
	appErrors "github.com/noah-isme/exam-planner-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type courseReader interface {
	ListUnscheduled(ctx context.Context, examType string, departmentID *string) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type roomReader interface {
	ListSuitable(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type instructorReader interface {
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
}

type placementStore interface {
	scheduling.PlacementSource
	Create(ctx context.Context, placement *models.ExamPlacement) error
	ListActiveByCourse(ctx context.Context, courseID, examType string) ([]models.ExamPlacement, error)
	ListAll(ctx context.Context) ([]models.ExamPlacement, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.ExamPlacement, error)
	DeletePlanned(ctx context.Context, from, to *time.Time) (int, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ExamSchedulerService runs the automated exam timetabling engine: it orders
// the unscheduled-course backlog, places each course into a conflict-free
// (date, slot, room-set) and records per-course failures without aborting the
// run. A run is single-threaded by contract: each committed placement must be
// visible to the conflict checks of every later course in the same run.
type ExamSchedulerService struct {
	courses     courseReader
	rooms       roomReader
	instructors instructorReader
	placements  placementStore
	enrollments scheduling.EnrollmentSource
	cache       snapshotCache
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ExamSchedulerConfig
	slots       []scheduling.TimeSlot
}

// ExamSchedulerConfig governs engine behaviour.
type ExamSchedulerConfig struct {
	ConflictStrategy string
	TimeSlots        []scheduling.TimeSlot
	StatsCacheTTL    time.Duration
}

// NewExamSchedulerService wires scheduler dependencies.
func NewExamSchedulerService(
	courses courseReader,
	rooms roomReader,
	instructors instructorReader,
	placements placementStore,
	enrollments scheduling.EnrollmentSource,
	cache snapshotCache,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ExamSchedulerConfig,
) *ExamSchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	slots := cfg.TimeSlots
	if len(slots) == 0 {
		slots = scheduling.DefaultTimeSlots()
	}
	if cfg.ConflictStrategy != config.StrategyEnrollment {
		cfg.ConflictStrategy = config.StrategyCohort
	}
	if cfg.StatsCacheTTL <= 0 {
		cfg.StatsCacheTTL = 5 * time.Minute
	}
	return &ExamSchedulerService{
		courses:     courses,
		rooms:       rooms,
		instructors: instructors,
		placements:  placements,
		enrollments: enrollments,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
		slots:       slots,
	}
}

// newChecker builds the per-run conflict chain. The enrollment index inside
// the enrollment strategy is a per-run lazy cache, so a fresh checker is
// required for every run.
func (s *ExamSchedulerService) newChecker() *scheduling.Checker {
	var strategy scheduling.StudentConflictStrategy
	if s.cfg.ConflictStrategy == config.StrategyEnrollment && s.enrollments != nil {
		strategy = scheduling.NewEnrollmentStrategy(s.placements, scheduling.NewEnrollmentIndex(s.enrollments))
	} else {
		strategy = scheduling.NewCohortStrategy(s.placements)
	}
	return scheduling.NewChecker(s.placements, strategy)
}

// Run executes one scheduling pass over the backlog. Per-course failures are
// collected in the result; only malformed input yields an error.
func (s *ExamSchedulerService) Run(ctx context.Context, req dto.GenerateExamScheduleRequest) (*dto.RunResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be formatted YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be formatted YYYY-MM-DD")
	}

	result := &dto.RunResult{
		Accepted: []dto.AcceptedPlacement{},
		Failed:   []dto.FailedCourse{},
		Strategy: s.cfg.ConflictStrategy,
	}

	if start.After(end) {
		result.Message = appErrors.ErrInvalidDateRange.Message
		return result, nil
	}

	if req.ClearExisting {
		deleted, err := s.placements.DeletePlanned(ctx, nil, nil)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to clear planned placements")
		}
		s.logger.Info("cleared planned placements", zap.Int("deleted", deleted))
	}

	queryStart := time.Now()
	backlog, err := s.courses.ListUnscheduled(ctx, req.ExamType, req.DepartmentID)
	s.metrics.ObserveDBQuery("courses_list_unscheduled", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unscheduled courses")
	}
	if len(backlog) == 0 {
		result.Success = true
		result.Message = "no courses left to schedule for this exam type"
		return result, nil
	}

	queryStart = time.Now()
	rooms, err := s.rooms.ListSuitable(ctx)
	s.metrics.ObserveDBQuery("rooms_list_suitable", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	if len(rooms) == 0 {
		result.Message = appErrors.ErrNoRoomsAvailable.Message
		result.Failed = failAll(backlog, appErrors.ErrNoRoomsAvailable)
		result.FailedCount = len(result.Failed)
		return result, nil
	}

	dates := scheduling.WeekdaysInRange(start, end)
	if len(dates) == 0 {
		result.Message = "no weekday falls within the requested date range"
		result.Failed = failAll(backlog, appErrors.ErrNoAvailableDay)
		result.FailedCount = len(result.Failed)
		return result, nil
	}

	// Largest and longest exams are the hardest to place, so they get first
	// pick of capacity and slots.
	sort.SliceStable(backlog, func(i, j int) bool {
		if backlog[i].StudentCount != backlog[j].StudentCount {
			return backlog[i].StudentCount > backlog[j].StudentCount
		}
		return backlog[i].ExamDuration > backlog[j].ExamDuration
	})

	checker := s.newChecker()
	allocator := scheduling.NewAllocator(checker)

	runStart := time.Now()
	var acceptedPlacements []models.ExamPlacement
	for _, course := range backlog {
		outcome, failErr := s.scheduleCourse(ctx, course, rooms, dates, req.ExamType, checker, allocator)
		if failErr != nil {
			result.Failed = append(result.Failed, dto.FailedCourse{
				CourseCode: course.Code,
				CourseName: course.Name,
				ReasonCode: failErr.Code,
				Reason:     failErr.Message,
			})
			continue
		}
		acceptedPlacements = append(acceptedPlacements, outcome.placements...)
		result.Accepted = append(result.Accepted, acceptedDTO(course, outcome))
	}

	result.AcceptedCount = len(result.Accepted)
	result.FailedCount = len(result.Failed)
	result.Statistics = runStatistics(acceptedPlacements, len(dates), len(s.slots), len(rooms))

	switch {
	case result.FailedCount == 0:
		result.Success = true
		result.Message = fmt.Sprintf("all %d exams scheduled", result.AcceptedCount)
	case result.AcceptedCount == 0:
		result.Message = fmt.Sprintf("no exams could be scheduled; %d courses failed", result.FailedCount)
	default:
		result.Success = true
		result.Message = fmt.Sprintf("%d exams scheduled, %d courses could not be placed", result.AcceptedCount, result.FailedCount)
	}

	s.metrics.ObserveSchedulerRun(result.AcceptedCount, result.FailedCount, time.Since(runStart))
	s.invalidateStats(ctx)
	s.logger.Info("scheduling run finished",
		zap.Int("accepted", result.AcceptedCount),
		zap.Int("failed", result.FailedCount),
		zap.String("strategy", result.Strategy),
		zap.Duration("took", time.Since(runStart)),
	)
	return result, nil
}

// courseOutcome pairs the persisted placements of one course with the rooms
// they occupy, primary room first.
type courseOutcome struct {
	placements []models.ExamPlacement
	rooms      []models.Room
}

// scheduleCourse walks the per-course state machine: duplicate guard,
// instructor availability, single-room search, room combination, and finally
// an aggregated failure reason.
func (s *ExamSchedulerService) scheduleCourse(
	ctx context.Context,
	course models.Course,
	rooms []models.Room,
	dates []time.Time,
	examType string,
	checker *scheduling.Checker,
	allocator *scheduling.Allocator,
) (*courseOutcome, *appErrors.Error) {
	existing, err := s.placements.ListActiveByCourse(ctx, course.ID, examType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load existing placements")
	}
	if len(existing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrDuplicateExam, fmt.Sprintf("a %s exam is already planned for %s", examType, course.Code))
	}

	available, err := s.availableWeekdays(ctx, course.InstructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor availability")
	}
	courseDates := lo.Filter(dates, func(d time.Time, _ int) bool {
		day, ok := scheduling.WeekdayOf(d)
		return ok && available[day]
	})
	if len(courseDates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoAvailableDay,
			fmt.Sprintf("instructor is only available on %s and no such day falls in the range", joinWeekdays(available)))
	}

	duration := course.ExamDuration
	if duration <= 0 {
		duration = 60
	}
	if !anySlotFits(s.slots, duration) {
		return nil, appErrors.Clone(appErrors.ErrSlotTooShort,
			fmt.Sprintf("exam duration %d min exceeds every configured time slot", duration))
	}

	conflictCounts := map[scheduling.ConflictKind]int{}
	candidate := scheduling.Candidate{
		CourseID:     course.ID,
		DepartmentID: course.DepartmentID,
		CohortYear:   course.CohortYear,
		InstructorID: course.InstructorID,
	}

	sufficient := allocator.SufficientRooms(rooms, course.StudentCount)
	if len(sufficient) > 0 {
		for _, date := range courseDates {
			for _, slot := range s.slots {
				if !slot.Fits(duration) {
					continue
				}
				interval := scheduling.TimeSlot{Start: slot.Start, End: scheduling.EndFor(slot.Start, duration)}
				room, err := allocator.SingleRoom(ctx, rooms, course.StudentCount, date, interval)
				if err != nil {
					return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "room availability check failed")
				}
				if room == nil {
					conflictCounts[scheduling.ConflictRoom]++
					continue
				}
				candidate.RoomID = room.ID
				candidate.Date = date
				candidate.Interval = interval
				kind, err := checker.CheckStudentsAndInstructor(ctx, candidate)
				if err != nil {
					return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "conflict check failed")
				}
				if kind != scheduling.ConflictNone {
					conflictCounts[kind]++
					continue
				}
				return s.commit(ctx, course, []models.Room{*room}, date, interval, examType)
			}
		}
	}

	capacityReached := false
	for _, date := range courseDates {
		for _, slot := range s.slots {
			if !slot.Fits(duration) {
				continue
			}
			interval := scheduling.TimeSlot{Start: slot.Start, End: scheduling.EndFor(slot.Start, duration)}
			combo, err := allocator.Combination(ctx, rooms, course.StudentCount, date, interval)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "room availability check failed")
			}
			if combo == nil {
				continue
			}
			capacityReached = true
			candidate.RoomID = combo[0].ID
			candidate.Date = date
			candidate.Interval = interval
			kind, err := checker.CheckStudentsAndInstructor(ctx, candidate)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "conflict check failed")
			}
			if kind != scheduling.ConflictNone {
				conflictCounts[kind]++
				continue
			}
			return s.commit(ctx, course, combo, date, interval, examType)
		}
	}

	if !capacityReached && len(sufficient) == 0 {
		maxCapacity := 0
		totalCapacity := 0
		for _, room := range rooms {
			totalCapacity += room.Capacity
			if room.Capacity > maxCapacity {
				maxCapacity = room.Capacity
			}
		}
		return nil, appErrors.Clone(appErrors.ErrInsufficientCapacity,
			fmt.Sprintf("%d students exceed the free pool capacity (largest room %d, pool total %d)", course.StudentCount, maxCapacity, totalCapacity))
	}
	return nil, dominantConflictError(conflictCounts)
}

// commit persists the placement set for a course: one primary row with the
// full student count and, for combinations, one linked row per extra room
// with zero attributed seats.
func (s *ExamSchedulerService) commit(
	ctx context.Context,
	course models.Course,
	rooms []models.Room,
	date time.Time,
	interval scheduling.TimeSlot,
	examType string,
) (*courseOutcome, *appErrors.Error) {
	stamp := time.Now().UTC().Format("2006-01-02 15:04")
	roomNames := strings.Join(lo.Map(rooms, func(r models.Room, _ int) string { return r.Name }), ", ")

	notes := "auto-scheduled " + stamp
	if len(rooms) > 1 {
		notes = fmt.Sprintf("auto-scheduled (combined rooms: %s) %s", roomNames, stamp)
	}

	primary := models.ExamPlacement{
		CourseID:     course.ID,
		RoomID:       rooms[0].ID,
		ExamDate:     date,
		StartTime:    scheduling.FormatClock(interval.Start),
		EndTime:      scheduling.FormatClock(interval.End),
		ExamType:     examType,
		Status:       models.PlacementPlanned,
		StudentCount: course.StudentCount,
		Notes:        notes,
	}
	insertStart := time.Now()
	err := s.placements.Create(ctx, &primary)
	s.metrics.ObserveDBQuery("placements_create", time.Since(insertStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to persist placement")
	}

	placements := []models.ExamPlacement{primary}
	for i, room := range rooms[1:] {
		linked := models.ExamPlacement{
			CourseID:          course.ID,
			RoomID:            room.ID,
			ExamDate:          date,
			StartTime:         primary.StartTime,
			EndTime:           primary.EndTime,
			ExamType:          examType,
			Status:            models.PlacementPlanned,
			StudentCount:      0,
			Notes:             fmt.Sprintf("combined exam (%d/%d), primary room %s", i+2, len(rooms), rooms[0].Name),
			LinkedPlacementID: &primary.ID,
		}
		insertStart = time.Now()
		err = s.placements.Create(ctx, &linked)
		s.metrics.ObserveDBQuery("placements_create", time.Since(insertStart))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to persist linked placement")
		}
		placements = append(placements, linked)
	}
	return &courseOutcome{placements: placements, rooms: rooms}, nil
}

func (s *ExamSchedulerService) availableWeekdays(ctx context.Context, instructorID *string) (map[scheduling.Weekday]bool, error) {
	if instructorID == nil || *instructorID == "" {
		return scheduling.AvailableWeekdays(nil), nil
	}
	instructor, err := s.instructors.FindByID(ctx, *instructorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scheduling.AvailableWeekdays(nil), nil
		}
		return nil, err
	}
	return scheduling.AvailableWeekdays(instructor.AvailableDays), nil
}

// ValidateManualPlacement runs the single-candidate version of the engine's
// checks for a manually entered placement.
func (s *ExamSchedulerService) ValidateManualPlacement(ctx context.Context, req dto.ValidatePlacementRequest) (*dto.ValidatePlacementResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid placement validation payload")
	}
	resp := &dto.ValidatePlacementResponse{Errors: []string{}, Warnings: []string{}}

	date, err := time.Parse(dateLayout, req.ExamDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "examDate must be formatted YYYY-MM-DD")
	}
	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be formatted HH:MM")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			resp.Errors = append(resp.Errors, "course not found")
			return resp, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	room, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			resp.Errors = append(resp.Errors, "room not found")
			return resp, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	end := 0
	if req.EndTime != nil && *req.EndTime != "" {
		end, err = scheduling.ParseClock(*req.EndTime)
		if err != nil || end <= start {
			resp.Errors = append(resp.Errors, "endTime must be a HH:MM value after startTime")
			return resp, nil
		}
	} else {
		duration := course.ExamDuration
		if duration <= 0 {
			duration = 60
		}
		end = scheduling.EndFor(start, duration)
	}
	interval := scheduling.TimeSlot{Start: start, End: end}

	if _, isWeekday := scheduling.WeekdayOf(date); !isWeekday {
		resp.Warnings = append(resp.Warnings, "selected date falls on a weekend")
	}
	if course.ExamDuration > 0 && !models.ValidExamDuration(course.ExamDuration) {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("exam duration %d min is not one of the standard durations", course.ExamDuration))
	}
	if room.Capacity < course.StudentCount {
		resp.Errors = append(resp.Errors, fmt.Sprintf("room capacity is insufficient (%d < %d)", room.Capacity, course.StudentCount))
	}
	if course.InstructorID != nil {
		available, err := s.availableWeekdays(ctx, course.InstructorID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor availability")
		}
		if day, isWeekday := scheduling.WeekdayOf(date); isWeekday && !available[day] {
			resp.Errors = append(resp.Errors, fmt.Sprintf("instructor is not available on %s", day))
		}
	}

	checker := s.newChecker()
	kind, err := checker.Check(ctx, scheduling.Candidate{
		CourseID:     course.ID,
		RoomID:       room.ID,
		Date:         date,
		Interval:     interval,
		DepartmentID: course.DepartmentID,
		CohortYear:   course.CohortYear,
		InstructorID: course.InstructorID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "conflict check failed")
	}
	if kind != scheduling.ConflictNone {
		resp.Errors = append(resp.Errors, conflictError(kind).Message)
	}

	active, err := s.placements.ListActiveByCourse(ctx, course.ID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing placements")
	}
	if len(active) > 0 {
		resp.Warnings = append(resp.Warnings, "an active exam already exists for this course")
	}

	resp.Valid = len(resp.Errors) == 0
	return resp, nil
}

// ClearPlanned deletes planned placements, optionally bounded by a date range.
func (s *ExamSchedulerService) ClearPlanned(ctx context.Context, from, to *time.Time) (int, error) {
	deleted, err := s.placements.DeletePlanned(ctx, from, to)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to delete planned placements")
	}
	s.invalidateStats(ctx)
	return deleted, nil
}

const statsCacheKey = "exam-planner:statistics"

// Statistics summarises the persisted timetable, optionally bounded by a
// date range. Unbounded snapshots are cached; ranged queries always hit the
// database.
func (s *ExamSchedulerService) Statistics(ctx context.Context, from, to *time.Time) (*dto.ScheduleStatistics, error) {
	bounded := from != nil && to != nil
	if !bounded && s.cache != nil {
		var cached dto.ScheduleStatistics
		if err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		}
	}

	var (
		placements []models.ExamPlacement
		err        error
	)
	if bounded {
		placements, err = s.placements.ListBetween(ctx, *from, *to)
	} else {
		placements, err = s.placements.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load placements")
	}

	stats := &dto.ScheduleStatistics{
		ByDate: map[string]int{},
		ByRoom: map[string]int{},
	}
	for _, p := range placements {
		stats.Total++
		switch p.Status {
		case models.PlacementPlanned:
			stats.Planned++
		case models.PlacementConfirmed:
			stats.Confirmed++
		case models.PlacementCancelled:
			stats.Cancelled++
		}
		if !p.Active() {
			continue
		}
		stats.ByDate[p.ExamDate.Format(dateLayout)]++
		stats.ByRoom[roomLabel(p)]++
		stats.TotalStudent += p.StudentCount
	}

	if !bounded && s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.cfg.StatsCacheTTL); err != nil {
			s.logger.Warn("statistics cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *ExamSchedulerService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}

// --- Helpers ---

func failAll(courses []models.Course, reason *appErrors.Error) []dto.FailedCourse {
	return lo.Map(courses, func(c models.Course, _ int) dto.FailedCourse {
		return dto.FailedCourse{
			CourseCode: c.Code,
			CourseName: c.Name,
			ReasonCode: reason.Code,
			Reason:     reason.Message,
		}
	})
}

func acceptedDTO(course models.Course, outcome *courseOutcome) dto.AcceptedPlacement {
	primary := outcome.placements[0]
	return dto.AcceptedPlacement{
		PlacementID: primary.ID,
		CourseID:    course.ID,
		CourseCode:  course.Code,
		CourseName:  course.Name,
		RoomIDs:     lo.Map(outcome.rooms, func(r models.Room, _ int) string { return r.ID }),
		RoomNames:   strings.Join(lo.Map(outcome.rooms, func(r models.Room, _ int) string { return r.Name }), ", "),
		Date:        primary.ExamDate.Format(dateLayout),
		StartTime:   primary.StartTime,
		EndTime:     primary.EndTime,
		ExamType:    primary.ExamType,
		Students:    course.StudentCount,
	}
}

func runStatistics(placements []models.ExamPlacement, dates, slots, rooms int) dto.RunStatistics {
	stats := dto.RunStatistics{
		ExamsByDate: map[string]int{},
		ExamsByRoom: map[string]int{},
	}
	for _, p := range placements {
		stats.TotalExams++
		stats.TotalStudents += p.StudentCount
		stats.ExamsByDate[p.ExamDate.Format(dateLayout)]++
		stats.ExamsByRoom[p.RoomID]++
	}
	totalSlots := dates * slots * rooms
	if totalSlots > 0 {
		stats.UtilizationRate = math.Round(float64(stats.TotalExams)/float64(totalSlots)*10000) / 100
	}
	return stats
}

func anySlotFits(slots []scheduling.TimeSlot, duration int) bool {
	return lo.SomeBy(slots, func(slot scheduling.TimeSlot) bool {
		return slot.Fits(duration)
	})
}

func joinWeekdays(available map[scheduling.Weekday]bool) string {
	var names []string
	for _, day := range scheduling.AllWeekdays {
		if available[day] {
			names = append(names, string(day))
		}
	}
	return strings.Join(names, ", ")
}

func conflictError(kind scheduling.ConflictKind) *appErrors.Error {
	switch kind {
	case scheduling.ConflictRoom:
		return appErrors.ErrRoomConflict
	case scheduling.ConflictStudent:
		return appErrors.ErrStudentConflict
	case scheduling.ConflictInstructor:
		return appErrors.ErrInstructorConflict
	default:
		return appErrors.ErrInternal
	}
}

// dominantConflictError names the most frequent conflict category among the
// exhausted candidates, with room > student > instructor breaking ties.
func dominantConflictError(counts map[scheduling.ConflictKind]int) *appErrors.Error {
	order := []scheduling.ConflictKind{scheduling.ConflictRoom, scheduling.ConflictStudent, scheduling.ConflictInstructor}
	dominant := scheduling.ConflictRoom
	best := -1
	for _, kind := range order {
		if counts[kind] > best {
			best = counts[kind]
			dominant = kind
		}
	}
	base := conflictError(dominant)
	total := counts[scheduling.ConflictRoom] + counts[scheduling.ConflictStudent] + counts[scheduling.ConflictInstructor]
	return appErrors.Clone(base, fmt.Sprintf("%s (%d of %d rejected candidates)", base.Message, counts[dominant], total))
}

func roomLabel(p models.ExamPlacement) string {
	if p.RoomName != nil && *p.RoomName != "" {
		return *p.RoomName
	}
	return p.RoomID
}
