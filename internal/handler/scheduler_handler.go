package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-planner-api/internal/dto"
	"github.com/noah-isme/exam-planner-api/internal/service"
	appErrors "github.com/noah-isme/exam-planner-api/pkg/errors"
	"github.com/noah-isme/exam-planner-api/pkg/response"
)

type examScheduler interface {
	Run(ctx context.Context, req dto.GenerateExamScheduleRequest) (*dto.RunResult, error)
	ValidateManualPlacement(ctx context.Context, req dto.ValidatePlacementRequest) (*dto.ValidatePlacementResponse, error)
	ClearPlanned(ctx context.Context, from, to *time.Time) (int, error)
	Statistics(ctx context.Context, from, to *time.Time) (*dto.ScheduleStatistics, error)
}

// SchedulerHandler exposes the exam timetabling endpoints.
type SchedulerHandler struct {
	service examScheduler
}

// NewSchedulerHandler constructs the handler.
func NewSchedulerHandler(svc *service.ExamSchedulerService) *SchedulerHandler {
	return &SchedulerHandler{service: svc}
}

// Generate runs a scheduling pass over the unscheduled-course backlog.
func (h *SchedulerHandler) Generate(c *gin.Context) {
	var req dto.GenerateExamScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Validate checks a manually entered placement without persisting it.
func (h *SchedulerHandler) Validate(c *gin.Context) {
	var req dto.ValidatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validate payload"))
		return
	}
	result, err := h.service.ValidateManualPlacement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ClearPlanned deletes planned placements, optionally bounded by from/to
// query dates.
func (h *SchedulerHandler) ClearPlanned(c *gin.Context) {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be formatted YYYY-MM-DD"))
		return
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be formatted YYYY-MM-DD"))
		return
	}
	deleted, err := h.service.ClearPlanned(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Statistics serves the persisted-timetable snapshot, optionally bounded by
// from/to query dates.
func (h *SchedulerHandler) Statistics(c *gin.Context) {
	from, err := optionalDate(c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be formatted YYYY-MM-DD"))
		return
	}
	to, err := optionalDate(c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be formatted YYYY-MM-DD"))
		return
	}
	stats, err := h.service.Statistics(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
