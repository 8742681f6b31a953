package stock

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/acedk/steakout-backend/internal/repo"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for stock items and movements.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, location *enums.StockLocation) ([]models.StockItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.StockItem, error)
	GetByName(ctx context.Context, name string, location enums.StockLocation) (*models.StockItem, error)
	Update(ctx context.Context, item *models.StockItem) error
	DecrementConditional(ctx context.Context, name string, location enums.StockLocation, units int64) (bool, error)
	ClampZero(ctx context.Context, name string, location enums.StockLocation, below int64) error
	MovementExists(ctx context.Context, orderID uuid.UUID) (bool, error)
	CreateMovement(ctx context.Context, movement *models.StockMovement) error
}

type repository struct {
	repo.Base
}

// NewRepository returns a stock repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) List(ctx context.Context, location *enums.StockLocation) ([]models.StockItem, error) {
	query := r.DB(ctx).Order("name ASC")
	if location != nil {
		query = query.Where("location = ?", *location)
	}
	var items []models.StockItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	var item models.StockItem
	err := r.DB(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "stock item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetByName(ctx context.Context, name string, location enums.StockLocation) (*models.StockItem, error) {
	var item models.StockItem
	err := r.DB(ctx).
		Where("name = ? AND location = ?", name, location).
		First(&item).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "stock item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *models.StockItem) error {
	return r.DB(ctx).Save(item).Error
}

// DecrementConditional applies an atomic decrement guarded by the
// current quantity. It reports whether a row was updated; false means
// the row is missing or holds fewer units than requested.
func (r *repository) DecrementConditional(ctx context.Context, name string, location enums.StockLocation, units int64) (bool, error) {
	result := r.DB(ctx).
		Model(&models.StockItem{}).
		Where("name = ? AND location = ? AND quantity >= ?", name, location, units).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", units),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClampZero floors a short row at zero. The quantity guard keeps a
// restock that lands after the failed decrement from being wiped.
func (r *repository) ClampZero(ctx context.Context, name string, location enums.StockLocation, below int64) error {
	return r.DB(ctx).
		Model(&models.StockItem{}).
		Where("name = ? AND location = ? AND quantity < ?", name, location, below).
		Updates(map[string]any{
			"quantity":   0,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) MovementExists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.StockMovement{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	return r.DB(ctx).Create(movement).Error
}
