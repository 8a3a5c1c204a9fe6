package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss  = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Scheduling reason codes. Per-course failures never abort a run; these cross
// the API boundary as data inside the run result, so the HTTP status attached
// to them is informational only.
var (
	ErrInvalidDateRange     = New("INVALID_DATE_RANGE", http.StatusBadRequest, "start date is after end date")
	ErrNoRoomsAvailable     = New("NO_ROOMS_AVAILABLE", http.StatusConflict, "no suitable rooms available")
	ErrNoAvailableDay       = New("NO_AVAILABLE_DAY", http.StatusConflict, "instructor has no available weekday in the requested range")
	ErrDuplicateExam        = New("DUPLICATE_EXAM", http.StatusConflict, "an active exam already exists for this course and exam type")
	ErrInsufficientCapacity = New("INSUFFICIENT_CAPACITY", http.StatusConflict, "no room or room combination reaches the required capacity")
	ErrSlotTooShort         = New("SLOT_TOO_SHORT", http.StatusConflict, "every configured time slot is shorter than the exam duration")
	ErrRoomConflict         = New("ROOM_CONFLICT", http.StatusConflict, "room is already booked in the candidate interval")
	ErrStudentConflict      = New("STUDENT_CONFLICT", http.StatusConflict, "students have another exam in the candidate interval")
	ErrInstructorConflict   = New("INSTRUCTOR_CONFLICT", http.StatusConflict, "instructor has another exam in the candidate interval")
	ErrPersistence          = New("PERSISTENCE_ERROR", http.StatusInternalServerError, "failed to persist placement")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
