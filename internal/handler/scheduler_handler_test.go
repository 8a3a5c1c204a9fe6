package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-planner-api/internal/dto"
	appErrors "github.com/noah-isme/exam-planner-api/pkg/errors"
)

type schedulerStub struct {
	runResult    *dto.RunResult
	runErr       error
	validateResp *dto.ValidatePlacementResponse
	cleared      int
	stats        *dto.ScheduleStatistics
	lastClearTo  *time.Time
}

func (s *schedulerStub) Run(_ context.Context, _ dto.GenerateExamScheduleRequest) (*dto.RunResult, error) {
	return s.runResult, s.runErr
}

func (s *schedulerStub) ValidateManualPlacement(_ context.Context, _ dto.ValidatePlacementRequest) (*dto.ValidatePlacementResponse, error) {
	return s.validateResp, nil
}

func (s *schedulerStub) ClearPlanned(_ context.Context, _, to *time.Time) (int, error) {
	s.lastClearTo = to
	return s.cleared, nil
}

func (s *schedulerStub) Statistics(_ context.Context, _, _ *time.Time) (*dto.ScheduleStatistics, error) {
	return s.stats, nil
}

func newSchedulerRouter(stub *schedulerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &SchedulerHandler{service: stub}
	r := gin.New()
	r.POST("/exam-schedule/generate", h.Generate)
	r.POST("/exam-schedule/validate", h.Validate)
	r.DELETE("/exam-schedule/planned", h.ClearPlanned)
	r.GET("/exam-schedule/statistics", h.Statistics)
	return r
}

func TestSchedulerHandlerGenerate(t *testing.T) {
	stub := &schedulerStub{runResult: &dto.RunResult{Success: true, AcceptedCount: 3}}
	r := newSchedulerRouter(stub)

	body, _ := json.Marshal(dto.GenerateExamScheduleRequest{
		StartDate: "2026-06-01",
		EndDate:   "2026-06-05",
		ExamType:  "final",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exam-schedule/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Success)
	assert.Equal(t, 3, envelope.Data.AcceptedCount)
}

func TestSchedulerHandlerGenerateRejectsMalformedBody(t *testing.T) {
	r := newSchedulerRouter(&schedulerStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exam-schedule/generate", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulerHandlerGeneratePropagatesServiceError(t *testing.T) {
	stub := &schedulerStub{runErr: appErrors.Clone(appErrors.ErrValidation, "bad payload")}
	r := newSchedulerRouter(stub)

	body, _ := json.Marshal(dto.GenerateExamScheduleRequest{ExamType: "final"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exam-schedule/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulerHandlerClearPlannedParsesDates(t *testing.T) {
	stub := &schedulerStub{cleared: 4}
	r := newSchedulerRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/exam-schedule/planned?from=2026-06-01&to=2026-06-05", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastClearTo)
	assert.Equal(t, "2026-06-05", stub.lastClearTo.Format("2006-01-02"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/exam-schedule/planned?from=nonsense", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulerHandlerStatistics(t *testing.T) {
	stub := &schedulerStub{stats: &dto.ScheduleStatistics{Total: 7, Planned: 5}}
	r := newSchedulerRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/exam-schedule/statistics", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.ScheduleStatistics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 7, envelope.Data.Total)
}
