package dto

// GenerateExamScheduleRequest instructs the engine to build a timetable for
// the date range.
type GenerateExamScheduleRequest struct {
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	DepartmentID  *string `json:"departmentId,omitempty"`
	ExamType      string  `json:"examType" validate:"required"`
	ClearExisting bool    `json:"clearExisting"`
}

// AcceptedPlacement summarises one scheduled exam in the run result. RoomIDs
// lists the primary room first.
type AcceptedPlacement struct {
	PlacementID string   `json:"placementId"`
	CourseID    string   `json:"courseId"`
	CourseCode  string   `json:"courseCode"`
	CourseName  string   `json:"courseName"`
	RoomIDs     []string `json:"roomIds"`
	RoomNames   string   `json:"roomNames"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	ExamType    string   `json:"examType"`
	Students    int      `json:"students"`
}

// FailedCourse records one course the engine could not place.
type FailedCourse struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	ReasonCode string `json:"reasonCode"`
	Reason     string `json:"reason"`
}

// RunStatistics aggregates the accepted placements of one run.
type RunStatistics struct {
	TotalExams      int            `json:"totalExams"`
	TotalStudents   int            `json:"totalStudents"`
	ExamsByDate     map[string]int `json:"examsByDate"`
	ExamsByRoom     map[string]int `json:"examsByRoom"`
	UtilizationRate float64        `json:"utilizationRate"`
}

// RunResult is the complete outcome of a scheduling run. Partial success is
// expected: Success is true whenever at least one course was placed.
type RunResult struct {
	Success       bool                `json:"success"`
	AcceptedCount int                 `json:"acceptedCount"`
	FailedCount   int                 `json:"failedCount"`
	Accepted      []AcceptedPlacement `json:"accepted"`
	Failed        []FailedCourse      `json:"failed"`
	Message       string              `json:"message"`
	Strategy      string              `json:"strategy"`
	Statistics    RunStatistics       `json:"statistics"`
}

// ValidatePlacementRequest checks a manually entered placement before an
// editing flow commits it. EndTime defaults to start plus the course's exam
// duration when omitted.
type ValidatePlacementRequest struct {
	CourseID  string  `json:"courseId" validate:"required"`
	RoomID    string  `json:"roomId" validate:"required"`
	ExamDate  string  `json:"examDate" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   *string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
}

// ValidatePlacementResponse reports validation findings. Errors block the
// placement, warnings do not.
type ValidatePlacementResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ScheduleStatistics is the persisted-timetable snapshot served by the
// statistics endpoint.
type ScheduleStatistics struct {
	Total        int            `json:"total"`
	Planned      int            `json:"planned"`
	Confirmed    int            `json:"confirmed"`
	Cancelled    int            `json:"cancelled"`
	ByDate       map[string]int `json:"byDate"`
	ByRoom       map[string]int `json:"byRoom"`
	TotalStudent int            `json:"totalStudents"`
}
