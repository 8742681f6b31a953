package settings

import (
	"context"
	stdErrors "errors"

	"github.com/acedk/steakout-backend/internal/repo"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository manages the single store settings row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context) (*models.StoreSettings, error)
	Save(ctx context.Context, settings *models.StoreSettings) error
}

type repository struct {
	repo.Base
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Get(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	err := r.DB(ctx).Order("updated_at DESC").First(&settings).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "store settings not configured")
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repository) Save(ctx context.Context, settings *models.StoreSettings) error {
	return r.DB(ctx).Save(settings).Error
}
