package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wayfarer/internal/service"
)

const DefaultListLimit = 50

type planStore interface {
	Create(ctx context.Context, it *Saved) error
	Get(ctx context.Context, id uuid.UUID) (*Saved, error)
	ListByUser(ctx context.Context, uid string, limit int) ([]Summary, error)
}

type Service struct {
	store planStore
	now   func() time.Time
	newID func() uuid.UUID
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now, newID: uuid.New}
}

// Save stores plan under uid and returns the saved record.
func (s *Service) Save(ctx context.Context, uid string, plan *service.TravelPlan) (*Saved, error) {
	if plan == nil {
		return nil, fmt.Errorf("save itinerary: nil plan")
	}
	it := &Saved{
		ID:          s.newID(),
		UserID:      uid,
		Title:       Title(plan),
		Destination: plan.Request.Destination,
		Days:        len(plan.Days),
		Plan:        plan,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("save itinerary: %w", err)
	}
	return it, nil
}

// Get returns the plan only to its owner.
func (s *Service) Get(ctx context.Context, uid string, id uuid.UUID) (*Saved, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != uid {
		return nil, ErrNotFound
	}
	return it, nil
}

func (s *Service) List(ctx context.Context, uid string) ([]Summary, error) {
	return s.store.ListByUser(ctx, uid, DefaultListLimit)
}

// Title names a plan after its destination, or its strongest preference.
func Title(plan *service.TravelPlan) string {
	where := plan.Request.Destination
	if where == "" && len(plan.Preferences) > 0 {
		c := plan.Preferences[0].Category
		where = strings.ToUpper(c[:1]) + c[1:] + " getaway"
	}
	if where == "" {
		where = "Trip"
	}
	unit := "days"
	if len(plan.Days) == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s, %d %s", where, len(plan.Days), unit)
}
