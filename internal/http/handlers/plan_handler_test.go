package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wayfarer/internal/ai"
	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/infra"
	"wayfarer/internal/modules/itinerary"
	"wayfarer/internal/modules/location"
	"wayfarer/internal/modules/quota"
	"wayfarer/internal/modules/route"
	"wayfarer/internal/service"
)

type stubPlanner struct {
	err   error
	calls int
	last  service.Query
}

func (s *stubPlanner) GenerateTravelPlan(_ context.Context, q service.Query) (*service.TravelPlan, error) {
	s.calls++
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	days := make([]ai.DayPlan, q.Days)
	for i := range days {
		days[i] = ai.DayPlan{Day: i + 1, Theme: "Adventure"}
	}
	return &service.TravelPlan{Request: q, Days: days, Route: &route.Result{Vector: make([]float64, route.VectorLength)}}, nil
}

type memPlans struct {
	saved map[uuid.UUID]*itinerary.Saved
	err   error
}

func newMemPlans() *memPlans { return &memPlans{saved: map[uuid.UUID]*itinerary.Saved{}} }

func (m *memPlans) Save(_ context.Context, uid string, plan *service.TravelPlan) (*itinerary.Saved, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := &itinerary.Saved{ID: uuid.New(), UserID: uid, Title: itinerary.Title(plan), Days: len(plan.Days), Plan: plan, CreatedAt: time.Now()}
	m.saved[s.ID] = s
	return s, nil
}

func (m *memPlans) Get(_ context.Context, uid string, id uuid.UUID) (*itinerary.Saved, error) {
	s, ok := m.saved[id]
	if !ok || s.UserID != uid {
		return nil, itinerary.ErrNotFound
	}
	return s, nil
}

func (m *memPlans) List(_ context.Context, uid string) ([]itinerary.Summary, error) {
	var out []itinerary.Summary
	for _, s := range m.saved {
		if s.UserID == uid {
			out = append(out, itinerary.Summary{ID: s.ID, Title: s.Title, Days: s.Days})
		}
	}
	return out, nil
}

type stubQuota struct {
	remaining int
	refunds   int
}

func (q *stubQuota) UsePlan(context.Context, string) error {
	if q.remaining <= 0 {
		return quota.ErrInsufficientTokens
	}
	q.remaining--
	return nil
}

func (q *stubQuota) Remaining(context.Context, string) (int, error) {
	return q.remaining, nil
}

func (q *stubQuota) Refund(context.Context, string) error {
	q.remaining++
	q.refunds++
	return nil
}

type fixture struct {
	router  *gin.Engine
	planner *stubPlanner
	plans   *memPlans
	quota   *stubQuota
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{planner: &stubPlanner{}, plans: newMemPlans(), quota: &stubQuota{remaining: 5}}
	h := handlers.NewPlanHandler(f.planner, f.plans, f.quota, handlers.PlanHandlerConfig{PlanTimeout: time.Second, MaxTripDays: 30}, zap.NewNop())

	r := gin.New()
	api := r.Group("/api", middleware.Auth(infra.DevVerifier{}))
	api.POST("/plans", h.Create)
	api.GET("/plans", h.List)
	api.GET("/plans/:id", h.Get)
	api.GET("/quota", h.Quota)
	f.router = r
	return f
}

func (f *fixture) do(method, path, uid string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid != "" {
		req.Header.Set("Authorization", "Bearer dev:"+uid)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreatePlan_SavesAndCharges(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/plans", "alice", map[string]any{
		"text":        "I want adventure and hiking in the mountains",
		"days":        5,
		"preferences": []string{"adventure"},
		"destination": "Banff",
		"start_date":  "2026-07-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved itinerary.Saved
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "alice", saved.UserID)
	assert.Equal(t, 5, saved.Days)
	require.NotNil(t, saved.Plan)
	assert.Len(t, saved.Plan.Days, 5)
	assert.NotNil(t, saved.Plan.Route)

	assert.Equal(t, 4, f.quota.remaining)
	w = f.do(http.MethodGet, "/api/quota", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plans_remaining":4}`, w.Body.String())
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), f.planner.last.StartDate)
}

func TestCreatePlan_Validation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"empty text", map[string]any{"text": "  ", "days": 3}},
		{"zero days", map[string]any{"text": "beach", "days": 0}},
		{"too many days", map[string]any{"text": "beach", "days": 31}},
		{"bad budget", map[string]any{"text": "beach", "days": 2, "budget": "lavish"}},
		{"bad date", map[string]any{"text": "beach", "days": 2, "start_date": "07/01/2026"}},
		{"not json", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			w := f.do(http.MethodPost, "/api/plans", "alice", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, f.planner.calls)
			assert.Equal(t, 5, f.quota.remaining)
		})
	}
}

func TestCreatePlan_Unauthenticated(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/plans", "", map[string]any{"text": "beach", "days": 2})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, f.planner.calls)
}

func TestCreatePlan_QuotaExhausted(t *testing.T) {
	f := newFixture()
	f.quota.remaining = 0
	w := f.do(http.MethodPost, "/api/plans", "alice", map[string]any{"text": "beach", "days": 2})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Zero(t, f.planner.calls)
}

func TestCreatePlan_ErrorMappingRefunds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: days", service.ErrInvalidInput), http.StatusBadRequest},
		{"insufficient data", location.ErrInsufficientData, http.StatusUnprocessableEntity},
		{"unknown region", &service.CollaboratorError{Collaborator: "location_source", Attempts: 1, Err: location.ErrUnknownRegion}, http.StatusUnprocessableEntity},
		{"collaborator", &service.CollaboratorError{Collaborator: "itinerary_generator", Attempts: 3, Err: errors.New("503")}, http.StatusBadGateway},
		{"deadline", fmt.Errorf("location_source: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.planner.err = tt.err
			w := f.do(http.MethodPost, "/api/plans", "alice", map[string]any{"text": "beach", "days": 2})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, 1, f.quota.refunds)
			assert.Equal(t, 5, f.quota.remaining)
			assert.Empty(t, f.plans.saved)
		})
	}
}

func TestCreatePlan_SaveFailureRefunds(t *testing.T) {
	f := newFixture()
	f.plans.err = errors.New("db down")
	w := f.do(http.MethodPost, "/api/plans", "alice", map[string]any{"text": "beach", "days": 2})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
	assert.Equal(t, 1, f.quota.refunds)
}

func TestGetAndListPlans(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodPost, "/api/plans", "alice", map[string]any{"text": "museums", "days": 2, "destination": "Paris"})
	require.Equal(t, http.StatusCreated, w.Code)
	var saved itinerary.Saved
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	w = f.do(http.MethodGet, "/api/plans/"+saved.ID.String(), "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/plans/"+saved.ID.String(), "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/plans/not-a-uuid", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/plans", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Plans []itinerary.Summary `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Plans, 1)
	assert.Equal(t, "Paris, 2 days", list.Plans[0].Title)

	w = f.do(http.MethodGet, "/api/plans", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"plans":[]}`, w.Body.String())
}
