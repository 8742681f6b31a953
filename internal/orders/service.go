package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/internal/deduction"
	"github.com/acedk/steakout-backend/internal/pricing"
	"github.com/acedk/steakout-backend/internal/settings"
	"github.com/acedk/steakout-backend/internal/stock"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/metrics"
	"github.com/acedk/steakout-backend/pkg/money"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service drives the order lifecycle: quoting, creation with stock
// deduction, listing, status transitions, and deletion.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error)
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const maxDisplayIDRetries = 5

var validTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusPreparing},
	enums.OrderStatusPreparing: {enums.OrderStatusCooking},
	enums.OrderStatusCooking:   {enums.OrderStatusReady},
	enums.OrderStatusReady:     {enums.OrderStatusCompleted, enums.OrderStatusDelivered},
}

type service struct {
	client    *db.Client
	repo      Repository
	catalog   catalog.Service
	stock     stock.Service
	settings  settings.Service
	ruleTable deduction.RuleTable
	logg      *logger.Logger
	metrics   *metrics.OrderMetrics
	now       func() time.Time
}

// NewService wires the order service.
func NewService(
	client *db.Client,
	repo Repository,
	catalogSvc catalog.Service,
	stockSvc stock.Service,
	settingsSvc settings.Service,
	ruleTable deduction.RuleTable,
	logg *logger.Logger,
	m *metrics.OrderMetrics,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if stockSvc == nil {
		return nil, fmt.Errorf("stock service required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
	}
	if err := ruleTable.Validate(); err != nil {
		return nil, err
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client:    client,
		repo:      repo,
		catalog:   catalogSvc,
		stock:     stockSvc,
		settings:  settingsSvc,
		ruleTable: ruleTable,
		logg:      logg,
		metrics:   m,
		now:       time.Now,
	}, nil
}

// Quote prices a cart without persisting anything. Any line failure
// rejects the whole quote; a cart that cannot be priced cleanly is
// never chargeable.
func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	if len(input.Lines) == 0 {
		return nil, errors.New(errors.CodeValidation, "at least one line is required")
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading catalog")
	}

	priced, lineErrs := pricing.PriceOrder(toPricingLines(input.Lines), snap)
	if len(lineErrs) > 0 {
		return nil, s.pricingError(ctx, lineErrs)
	}
	total := pricing.Total(priced)
	return &QuoteResult{Lines: priced, TotalPence: total, Total: money.FormatGBP(total)}, nil
}

// Create accepts an order: quotes it server-side, verifies the client
// total, persists the order with its priced lines, then plans and
// applies the stock deduction.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, errors.New(errors.CodeValidation, "customer name is required")
	}
	if len(input.Lines) == 0 {
		return nil, errors.New(errors.CodeValidation, "at least one line is required")
	}

	open, err := s.settings.IsOpenAt(ctx, s.now())
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "checking opening hours")
	}
	if !open {
		return nil, errors.New(errors.CodeStoreClosed, "orders are not being accepted right now")
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading catalog")
	}

	priced, lineErrs := pricing.PriceOrder(toPricingLines(input.Lines), snap)
	if len(lineErrs) > 0 {
		return nil, s.pricingError(ctx, lineErrs)
	}
	total := pricing.Total(priced)

	if input.ClientTotalPence != nil && *input.ClientTotalPence != total {
		s.metrics.IncPricingFailure("total_mismatch")
		return nil, errors.New(errors.CodePricing, "submitted total does not match server pricing").
			WithDetails(map[string]any{
				"server_total_pence": total,
				"client_total_pence": *input.ClientTotalPence,
			})
	}

	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  customer,
		Status:        enums.OrderStatusPending,
		TotalPence:    total,
		PaymentRef:    input.PaymentRef,
		Notes:         input.Notes,
		EstimatedTime: estimateTime(input.Lines, snap),
	}
	for i, line := range input.Lines {
		order.Lines = append(order.Lines, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			MenuItemID:     line.MenuItemID,
			Name:           priced[i].Name,
			Quantity:       line.Quantity,
			Addons:         line.Addons,
			UnitPricePence: priced[i].UnitPricePence,
			LineTotalPence: priced[i].LineTotalPence,
			FreeAddons:     types.FreeAddons(priced[i].FreeAddonsApplied),
		})
	}

	// The count-derived display id can collide: a concurrent submission
	// reads the same count, and a deleted order shrinks the count below
	// numbers already handed out. Retry the insert with the next number
	// instead of surfacing the unique violation.
	for attempt := int64(0); ; attempt++ {
		err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			order.DisplayID = fmt.Sprintf("#%03d", count+1+attempt)
			return repo.Create(ctx, order)
		})
		if err == nil || attempt >= maxDisplayIDRetries || !isUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "persisting order")
	}

	plan := deduction.PlanOrder(toConfirmedLines(order.Lines), s.ruleTable)
	if err := s.stock.ApplyPlan(ctx, order.ID, plan); err != nil {
		// The order is persisted; the applier is idempotent per order id
		// so a retry can complete the deduction.
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()),
			"stock deduction failed after order persisted", err)
		return nil, errors.Wrap(errors.CodeInternal, err, "applying stock deduction")
	}

	s.metrics.IncOrdersCreated()
	s.metrics.ObserveOrderTotal(total)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":    order.ID.String(),
		"display_id":  order.DisplayID,
		"total_pence": total,
		"total":       money.FormatGBP(total),
	}), "order created")
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, errors.New(errors.CodeValidation, "order id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	return s.repo.List(ctx, filters)
}

// Update applies an admin edit to order metadata. Lines and totals are
// immutable; a wrong order is deleted and re-entered.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, errors.New(errors.CodeValidation, "customer name cannot be empty")
		}
		order.CustomerName = name
	}
	if input.PaymentRef != nil {
		order.PaymentRef = input.PaymentRef
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving order")
	}
	return order, nil
}

// UpdateStatus advances an order through the kitchen pipeline. Terminal
// statuses stamp completed_at and accept no further transitions.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, status) {
		return nil, errors.New(errors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	order.Status = status
	if status.IsTerminal() {
		completed := s.now().UTC()
		order.CompletedAt = &completed
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving order status")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"status":   string(status),
	}), "order status updated")
	return order, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New(errors.CodeValidation, "order id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) pricingError(ctx context.Context, lineErrs []pricing.LineError) error {
	details := make([]map[string]any, 0, len(lineErrs))
	for _, lineErr := range lineErrs {
		s.metrics.IncPricingFailure(failureReason(lineErr))
		details = append(details, map[string]any{
			"line":  lineErr.Index,
			"error": lineErr.Err.Error(),
		})
	}
	s.logg.Warn(s.logg.WithField(ctx, "line_errors", len(lineErrs)), "order failed pricing")
	return errors.New(errors.CodePricing, "order could not be priced").WithDetails(details)
}

func failureReason(err pricing.LineError) string {
	switch err.Unwrap().(type) {
	case *pricing.UnknownItemError:
		return "unknown_item"
	case *pricing.UnknownAddonError:
		return "unknown_addon"
	case *pricing.InvalidLineError:
		return "invalid_line"
	}
	return "unknown"
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func canTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func toPricingLines(lines []QuoteLineInput) []pricing.OrderLine {
	out := make([]pricing.OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, pricing.OrderLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Addons:     line.Addons,
		})
	}
	return out
}

func toConfirmedLines(lines []models.OrderLineItem) []deduction.ConfirmedLine {
	out := make([]deduction.ConfirmedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, deduction.ConfirmedLine{
			Name:     line.Name,
			Quantity: line.Quantity,
			Addons:   line.Addons,
		})
	}
	return out
}

func estimateTime(lines []QuoteLineInput, snap *catalog.Snapshot) string {
	maxPrep := 10
	for _, line := range lines {
		if item, ok := snap.MenuItemByID(line.MenuItemID); ok && item.PrepTimeMinutes > maxPrep {
			maxPrep = item.PrepTimeMinutes
		}
	}
	return fmt.Sprintf("%d-%d min", maxPrep, maxPrep+5)
}
