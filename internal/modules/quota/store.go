package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles plan_quota persistence.
type Store struct {
	db        *pgxpool.Pool
	allowance int
	now       func() time.Time
}

// NewStore returns a Store granting allowance plans per month.
func NewStore(db *pgxpool.Pool, allowance int) *Store {
	if allowance <= 0 {
		allowance = DefaultMonthlyPlans
	}
	return &Store{db: db, allowance: allowance, now: time.Now}
}

func (s *Store) month() string { return s.now().UTC().Format("2006-01") }

// Use atomically checks the monthly quota and deducts one plan.
// It resets the counter to the allowance when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) Use(ctx context.Context, uid string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE plan_quota SET
			plans_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE plans_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR plans_remaining > 0)
	`, s.month(), s.allowance, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// Refund gives back one plan, never exceeding the allowance.
func (s *Store) Refund(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE plan_quota SET plans_remaining = LEAST(plans_remaining + 1, $1)
		WHERE uid = $2 AND last_reset_month = $3
	`, s.allowance, uid, s.month())
	return err
}

// EnsureUser inserts a new plan_quota row for uid with the full allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_quota (uid, plans_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.allowance, s.month())
	return err
}

// Remaining reports the plans left this month; absent users have the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	var remaining int
	var month string
	err := s.db.QueryRow(ctx,
		`SELECT plans_remaining, last_reset_month FROM plan_quota WHERE uid = $1`, uid,
	).Scan(&remaining, &month)
	if err != nil {
		if isNoRows(err) {
			return s.allowance, nil
		}
		return 0, err
	}
	if month != s.month() {
		return s.allowance, nil
	}
	return remaining, nil
}
