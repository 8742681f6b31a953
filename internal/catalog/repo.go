package catalog

import (
	"context"
	stdErrors "errors"

	"github.com/acedk/steakout-backend/internal/repo"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages read access to catalog reference data.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListAddonPrices(ctx context.Context) ([]models.AddonPrice, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.DB(ctx).
		Order("display_order ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.DB(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "menu item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListAddonPrices(ctx context.Context) ([]models.AddonPrice, error) {
	var addons []models.AddonPrice
	if err := r.DB(ctx).
		Order("name ASC").
		Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}
