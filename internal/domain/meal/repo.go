package meal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a meal does not exist or belongs to another user.
var ErrNotFound = errors.New("meal not found")

// Repository persists logged meals. All reads are scoped by user so one user
// can never see or touch another's log.
type Repository interface {
	Create(ctx context.Context, m *LoggedMeal) error
	Get(ctx context.Context, userID, id string) (*LoggedMeal, error)
	ListByDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]LoggedMeal, error)
	List(ctx context.Context, userID string, limit, offset int) ([]LoggedMeal, error)
	Delete(ctx context.Context, userID, id string) error
}
