package catalog

import (
	"context"
	"fmt"

	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Service exposes catalog reads for controllers and an immutable
// snapshot for the pricing and deduction pipeline.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Menu(ctx context.Context) ([]models.MenuItem, error)
	MenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

type service struct {
	repo     Repository
	policies PolicyTable
}

// NewService wires a catalog service with the provided repository and
// validated policy table.
func NewService(repo Repository, policies PolicyTable) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if policies == nil {
		policies = DefaultPolicyTable()
	}
	if err := policies.Validate(); err != nil {
		return nil, err
	}
	return &service{repo: repo, policies: policies}, nil
}

// Snapshot loads the current reference data. Snapshots are rebuilt per
// call; callers wanting caching hold on to the returned value.
func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading menu items: %w", err)
	}
	addons, err := s.repo.ListAddonPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading addon prices: %w", err)
	}
	return NewSnapshot(items, addons, s.policies)
}

func (s *service) Menu(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListMenuItems(ctx)
}

func (s *service) MenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}
