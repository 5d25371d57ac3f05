package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wayfarer/internal/service"
)

// Store handles itineraries persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, it *Saved) error {
	plan, err := json.Marshal(it.Plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO itineraries (id, uid, title, destination, days, plan, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, it.ID, it.UserID, it.Title, it.Destination, it.Days, plan, it.CreatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Saved, error) {
	var it Saved
	var plan []byte
	err := s.db.QueryRow(ctx, `
		SELECT id, uid, title, destination, days, plan, created_at
		FROM itineraries WHERE id = $1
	`, id).Scan(&it.ID, &it.UserID, &it.Title, &it.Destination, &it.Days, &plan, &it.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	it.Plan = &service.TravelPlan{}
	if err := json.Unmarshal(plan, it.Plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return &it, nil
}

// ListByUser returns the newest plans of uid first.
func (s *Store) ListByUser(ctx context.Context, uid string, limit int) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, destination, days, created_at
		FROM itineraries WHERE uid = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, uid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Destination, &sm.Days, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
