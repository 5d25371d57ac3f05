// README: Plan handlers: generate-and-save, list and fetch saved itineraries.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/itinerary"
	"wayfarer/internal/service"
)

type Planner interface {
	GenerateTravelPlan(ctx context.Context, q service.Query) (*service.TravelPlan, error)
}

type PlanStore interface {
	Save(ctx context.Context, uid string, plan *service.TravelPlan) (*itinerary.Saved, error)
	Get(ctx context.Context, uid string, id uuid.UUID) (*itinerary.Saved, error)
	List(ctx context.Context, uid string) ([]itinerary.Summary, error)
}

type Quota interface {
	UsePlan(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
	Remaining(ctx context.Context, uid string) (int, error)
}

type PlanHandlerConfig struct {
	PlanTimeout time.Duration
	MaxTripDays int
}

type PlanHandler struct {
	planner Planner
	plans   PlanStore
	quota   Quota
	cfg     PlanHandlerConfig
	logger  *zap.Logger
}

func NewPlanHandler(planner Planner, plans PlanStore, q Quota, cfg PlanHandlerConfig, logger *zap.Logger) *PlanHandler {
	if cfg.PlanTimeout <= 0 {
		cfg.PlanTimeout = time.Minute
	}
	if cfg.MaxTripDays <= 0 {
		cfg.MaxTripDays = 30
	}
	return &PlanHandler{planner: planner, plans: plans, quota: q, cfg: cfg, logger: logger}
}

type createPlanReq struct {
	Text        string   `json:"text"`
	Days        int      `json:"days"`
	Preferences []string `json:"preferences"`
	Destination string   `json:"destination"`
	Budget      string   `json:"budget"`
	StartDate   string   `json:"start_date"`
	TravelWith  string   `json:"travel_with"`
}

func (r createPlanReq) query(maxDays int) (service.Query, string) {
	q := service.Query{
		Text:        strings.TrimSpace(r.Text),
		Days:        r.Days,
		Preferences: r.Preferences,
		Destination: r.Destination,
		Budget:      r.Budget,
		TravelWith:  r.TravelWith,
	}
	if q.Text == "" {
		return q, "text is required"
	}
	if r.Days < 1 || r.Days > maxDays {
		return q, "days must be between 1 and " + itoa(maxDays)
	}
	switch strings.ToLower(strings.TrimSpace(r.Budget)) {
	case "", "low", "medium", "high":
	default:
		return q, "budget must be low, medium or high"
	}
	if s := strings.TrimSpace(r.StartDate); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return q, "start_date must be YYYY-MM-DD"
		}
		q.StartDate = d
	}
	return q, ""
}

// Create handles POST /api/plans. One plan is charged against the caller's
// monthly quota and refunded when generation or saving fails.
func (h *PlanHandler) Create(c *gin.Context) {
	uid := middleware.CallerUID(c)
	if uid == "" {
		writeError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req createPlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, msg := req.query(h.cfg.MaxTripDays)
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.quota.UsePlan(c.Request.Context(), uid); err != nil {
		writePlanError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.PlanTimeout)
	defer cancel()

	saved, err := h.generateAndSave(ctx, uid, q)
	if err != nil {
		// refund on a fresh context; ctx may already be done
		rctx, rcancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		defer rcancel()
		if rerr := h.quota.Refund(rctx, uid); rerr != nil {
			h.logger.Warn("quota refund failed", zap.String("uid", uid), zap.Error(rerr))
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, saved)
}

func (h *PlanHandler) generateAndSave(ctx context.Context, uid string, q service.Query) (*itinerary.Saved, error) {
	plan, err := h.planner.GenerateTravelPlan(ctx, q)
	if err != nil {
		return nil, err
	}
	return h.plans.Save(ctx, uid, plan)
}

// List handles GET /api/plans.
func (h *PlanHandler) List(c *gin.Context) {
	items, err := h.plans.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writePlanError(c, err)
		return
	}
	if items == nil {
		items = []itinerary.Summary{}
	}
	writeJSON(c, http.StatusOK, gin.H{"plans": items})
}

// Get handles GET /api/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid plan id")
		return
	}
	saved, err := h.plans.Get(c.Request.Context(), middleware.CallerUID(c), id)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

// Quota handles GET /api/quota.
func (h *PlanHandler) Quota(c *gin.Context) {
	n, err := h.quota.Remaining(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"plans_remaining": n})
}
