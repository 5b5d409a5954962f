package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a user has no stored health profile.
var ErrNotFound = errors.New("health profile not found")

// Repository persists health profiles by user identity. The engine is
// store-agnostic: a profile is a value fetched and replaced whole.
type Repository interface {
	Get(ctx context.Context, userID string) (*HealthProfile, error)
	Put(ctx context.Context, p *HealthProfile) error
	Delete(ctx context.Context, userID string) error
}
