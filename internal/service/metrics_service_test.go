package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-planner-api/internal/models"
)

func scrapeMetrics(t *testing.T, m *MetricsService) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	m.ObserveSchedulerRun(3, 1, 100*time.Millisecond)
	m.ObserveDBQuery("courses_list_unscheduled", 2*time.Millisecond)

	body := scrapeMetrics(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, "scheduler_runs_total 1")
	assert.Contains(t, body, "scheduler_exams_accepted_total 3")
	assert.Contains(t, body, "scheduler_exams_failed_total 1")
	assert.Contains(t, body, `db_query_duration_seconds_count{query="courses_list_unscheduled"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveSchedulerRun(1, 0, time.Second)
	m.ObserveDBQuery("x", time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRunObservesQueryAndRunMetrics(t *testing.T) {
	metrics := NewMetricsService()
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses: []models.Course{course("c1", "dept-1", 2, 60, 120)},
		rooms:   []models.Room{{ID: "r1", Name: "Hall A", Capacity: 100, Suitable: true}},
		metrics: metrics,
	})

	_, err := fixture.service.Run(context.Background(), generateRequest())
	require.NoError(t, err)

	body := scrapeMetrics(t, metrics)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="courses_list_unscheduled"} 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="rooms_list_suitable"} 1`)
	assert.Contains(t, body, `db_query_duration_seconds_count{query="placements_create"} 1`)
	assert.Contains(t, body, "scheduler_runs_total 1")
	assert.Contains(t, body, "scheduler_exams_accepted_total 1")
}
