package profile

import (
	"context"
	"fmt"

	"github.com/fridgenius/fridgenius/internal/domain/registry"
)

// Service provides business logic for health profiles.
type Service struct {
	profiles Repository
	reg      *registry.Registry
}

// NewService creates a new profile service.
func NewService(profiles Repository, reg *registry.Registry) *Service {
	return &Service{profiles: profiles, reg: reg}
}

// Registry exposes the condition registry backing this service.
func (s *Service) Registry() *registry.Registry { return s.reg }

// GetProfile fetches a user's stored profile.
func (s *Service) GetProfile(ctx context.Context, userID string) (*HealthProfile, error) {
	return s.profiles.Get(ctx, userID)
}

// SaveProfile validates and stores a synthesized profile, replacing any
// existing record. The repository assigns the new version and timestamp.
// Notes are capped at input time by the builder; the appended allergy
// sentence may push the stored text past that cap, so length is not
// re-checked here.
func (s *Service) SaveProfile(ctx context.Context, p *HealthProfile) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	for _, c := range p.Conditions {
		if c.ID == "" {
			return fmt.Errorf("condition id is required")
		}
		if !c.Status.Valid() {
			return fmt.Errorf("invalid condition status: %s", c.Status)
		}
	}
	if p.DietPreference != nil && !p.DietPreference.Valid() {
		return fmt.Errorf("invalid diet preference: %s", *p.DietPreference)
	}
	return s.profiles.Put(ctx, p)
}

// DeleteProfile removes a user's profile.
func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	return s.profiles.Delete(ctx, userID)
}

// BuilderFor returns a Builder seeded from the user's stored profile, or an
// empty one when no profile exists yet.
func (s *Service) BuilderFor(ctx context.Context, userID string) (*Builder, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err == ErrNotFound {
		return NewBuilder(s.reg), nil
	}
	if err != nil {
		return nil, err
	}
	return FromProfile(s.reg, p), nil
}
