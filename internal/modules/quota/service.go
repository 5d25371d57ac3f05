package quota

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type usageStore interface {
	Use(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
	EnsureUser(ctx context.Context, uid string) error
	Remaining(ctx context.Context, uid string) (int, error)
}

// Service orchestrates plan-quota logic.
type Service struct {
	store usageStore
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UsePlan deducts one plan from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the plan is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UsePlan(ctx context.Context, uid string) error {
	err := s.store.Use(ctx, uid)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.Use(ctx, uid)
}

// Refund returns a plan consumed by a request that did not produce one.
func (s *Service) Refund(ctx context.Context, uid string) error {
	return s.store.Refund(ctx, uid)
}

func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid)
}

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }
