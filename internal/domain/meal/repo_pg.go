package meal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed meal repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const mealColumns = `id, user_id, meal_type, logged_at, servings_multiplier, dishes, totals, fridge_link`

func (r *repoPG) Create(ctx context.Context, m *LoggedMeal) error {
	dishes, err := json.Marshal(m.Dishes)
	if err != nil {
		return fmt.Errorf("encode dishes: %w", err)
	}
	totals, err := json.Marshal(m.Totals)
	if err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}
	var fridgeLink []byte
	if m.FridgeLink != nil {
		fridgeLink, err = json.Marshal(m.FridgeLink)
		if err != nil {
			return fmt.Errorf("encode fridge link: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO logged_meal (id, user_id, meal_type, logged_at, servings_multiplier, dishes, totals, fridge_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.UserID, m.MealType, m.LoggedAt, m.ServingsMultiplier, dishes, totals, fridgeLink)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

func (r *repoPG) Get(ctx context.Context, userID, id string) (*LoggedMeal, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+mealColumns+`
		FROM logged_meal WHERE user_id = $1 AND id = $2`, userID, id)
	m, err := scanMeal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

func (r *repoPG) ListByDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]LoggedMeal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+mealColumns+`
		FROM logged_meal
		WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3
		ORDER BY logged_at`, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list meals by day: %w", err)
	}
	defer rows.Close()
	return collectMeals(rows)
}

func (r *repoPG) List(ctx context.Context, userID string, limit, offset int) ([]LoggedMeal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+mealColumns+`
		FROM logged_meal
		WHERE user_id = $1
		ORDER BY logged_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()
	return collectMeals(rows)
}

func (r *repoPG) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM logged_meal WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMeal(row pgx.Row) (*LoggedMeal, error) {
	var (
		m          LoggedMeal
		dishes     []byte
		totals     []byte
		fridgeLink []byte
	)
	err := row.Scan(&m.ID, &m.UserID, &m.MealType, &m.LoggedAt, &m.ServingsMultiplier, &dishes, &totals, &fridgeLink)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dishes, &m.Dishes); err != nil {
		return nil, fmt.Errorf("decode dishes: %w", err)
	}
	if err := json.Unmarshal(totals, &m.Totals); err != nil {
		return nil, fmt.Errorf("decode totals: %w", err)
	}
	if len(fridgeLink) > 0 {
		m.FridgeLink = &FridgeLink{}
		if err := json.Unmarshal(fridgeLink, m.FridgeLink); err != nil {
			return nil, fmt.Errorf("decode fridge link: %w", err)
		}
	}
	return &m, nil
}

func collectMeals(rows pgx.Rows) ([]LoggedMeal, error) {
	var out []LoggedMeal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return out, nil
}
