package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/acedk/steakout-backend/internal/deduction"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service applies deduction plans to the stock ledger and exposes
// admin reads/updates.
type Service interface {
	ApplyPlan(ctx context.Context, orderID uuid.UUID, plan deduction.Plan) error
	List(ctx context.Context, location *enums.StockLocation) ([]models.StockItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.StockItem, error)
	Adjust(ctx context.Context, input AdjustStockInput) (*models.StockItem, error)
}

// AdjustStockInput carries a manual admin stock update.
type AdjustStockInput struct {
	ID                uuid.UUID
	Quantity          *int64
	LowStockThreshold *int64
	Supplier          *string
	Notes             *string
}

type service struct {
	client   *db.Client
	repo     Repository
	logg     *logger.Logger
	metrics  *metrics.OrderMetrics
	location enums.StockLocation
}

// NewService wires the stock service. location selects which physical
// inventory order deductions target.
func NewService(client *db.Client, repo Repository, logg *logger.Logger, m *metrics.OrderMetrics, location enums.StockLocation) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !location.IsValid() {
		return nil, fmt.Errorf("invalid stock location %q", location)
	}
	return &service{client: client, repo: repo, logg: logg, metrics: m, location: location}, nil
}

// ApplyPlan decrements every entry of the plan in one transaction.
// Quantities clamp at zero; a clamp is logged and counted rather than
// failing the order. Re-applying a plan for an order that already has a
// movement row is a no-op.
func (s *service) ApplyPlan(ctx context.Context, orderID uuid.UUID, plan deduction.Plan) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("order id is required")
	}

	ctx = s.logg.WithOrderID(ctx, orderID.String())
	ctx = s.logg.WithLocation(ctx, string(s.location))

	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		applied, err := repo.MovementExists(ctx, orderID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "checking stock movement")
		}
		if applied {
			s.logg.Info(ctx, "deduction plan already applied, skipping")
			return nil
		}

		clamped := false
		for _, name := range sortedKeys(plan) {
			units := plan[name]
			ok, err := repo.DecrementConditional(ctx, name, s.location, units)
			if err != nil {
				return errors.Wrap(errors.CodeInternal, err, "decrementing stock")
			}
			if ok {
				continue
			}

			// Not enough stock or no row at all. Clamp and flag.
			clamped = true
			s.metrics.IncStockClamp(name)
			item, getErr := repo.GetByName(ctx, name, s.location)
			if getErr != nil {
				s.logg.Warn(s.logg.WithField(ctx, "stock_item", name),
					"deduction target has no stock row")
				continue
			}
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"stock_item": name,
				"requested":  units,
				"available":  item.Quantity,
			}), "stock clamped at zero during deduction")
			if err := repo.ClampZero(ctx, name, s.location, units); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "clamping stock")
			}
		}

		payload, err := json.Marshal(plan)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "encoding deduction plan")
		}
		movement := &models.StockMovement{
			ID:       uuid.New(),
			OrderID:  orderID,
			Location: s.location,
			Plan:     payload,
			Clamped:  clamped,
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "recording stock movement")
		}
		return nil
	})
}

func (s *service) List(ctx context.Context, location *enums.StockLocation) ([]models.StockItem, error) {
	return s.repo.List(ctx, location)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Adjust(ctx context.Context, input AdjustStockInput) (*models.StockItem, error) {
	if input.ID == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "stock item id is required")
	}
	item, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.New(errors.CodeValidation, "quantity cannot be negative")
		}
		item.Quantity = int(*input.Quantity)
	}
	if input.LowStockThreshold != nil {
		item.LowStockThreshold = int(*input.LowStockThreshold)
	}
	if input.Supplier != nil {
		item.Supplier = *input.Supplier
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func sortedKeys(plan deduction.Plan) []string {
	keys := make([]string, 0, len(plan))
	for k := range plan {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
