package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes the supplier back-office operations.
type Service interface {
	List(ctx context.Context) ([]models.Supplier, error)
	Create(ctx context.Context, name string) (*models.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires a supplier service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, name string) (*models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.CodeValidation, "supplier name is required")
	}
	supplier := &models.Supplier{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New(errors.CodeValidation, "supplier id is required")
	}
	return s.repo.Delete(ctx, id)
}
