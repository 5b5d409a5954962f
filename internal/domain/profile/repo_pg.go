package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed profile repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Get(ctx context.Context, userID string) (*HealthProfile, error) {
	var (
		p          HealthProfile
		conditions []byte
		labValues  []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, conditions, lab_values, free_text_notes, diet_preference, version, updated_at
		FROM health_profile WHERE user_id = $1`, userID).
		Scan(&p.UserID, &conditions, &labValues, &p.FreeTextNotes, &p.DietPreference, &p.Version, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get health profile: %w", err)
	}
	if err := json.Unmarshal(conditions, &p.Conditions); err != nil {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}
	if err := json.Unmarshal(labValues, &p.LabValues); err != nil {
		return nil, fmt.Errorf("decode lab values: %w", err)
	}
	return &p, nil
}

func (r *repoPG) Put(ctx context.Context, p *HealthProfile) error {
	conditions, err := json.Marshal(conditionsOrEmpty(p.Conditions))
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}
	labValues, err := json.Marshal(labValuesOrEmpty(p.LabValues))
	if err != nil {
		return fmt.Errorf("encode lab values: %w", err)
	}

	// The whole record is replaced on every save; version increments so
	// in-flight verdict requests can detect the change.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO health_profile (user_id, conditions, lab_values, free_text_notes, diet_preference, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			conditions = EXCLUDED.conditions,
			lab_values = EXCLUDED.lab_values,
			free_text_notes = EXCLUDED.free_text_notes,
			diet_preference = EXCLUDED.diet_preference,
			version = health_profile.version + 1,
			updated_at = NOW()
		RETURNING version, updated_at`,
		p.UserID, conditions, labValues, p.FreeTextNotes, p.DietPreference).
		Scan(&p.Version, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put health profile: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM health_profile WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete health profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func conditionsOrEmpty(c []HealthCondition) []HealthCondition {
	if c == nil {
		return []HealthCondition{}
	}
	return c
}

func labValuesOrEmpty(l []LabValue) []LabValue {
	if l == nil {
		return []LabValue{}
	}
	return l
}
