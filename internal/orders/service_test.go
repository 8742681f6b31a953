package orders

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/internal/deduction"
	"github.com/acedk/steakout-backend/internal/settings"
	"github.com/acedk/steakout-backend/internal/stock"
	"github.com/acedk/steakout-backend/pkg/config"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/acedk/steakout-backend/pkg/logger"
	"github.com/acedk/steakout-backend/pkg/metrics"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

var (
	kidsMealID   = uuid.New()
	deluxeID     = uuid.New()
	steakFriesID = uuid.New()
)

type fakeCatalog struct {
	snap *catalog.Snapshot
}

func (f *fakeCatalog) Snapshot(ctx context.Context) (*catalog.Snapshot, error) { return f.snap, nil }

func (f *fakeCatalog) Menu(ctx context.Context) ([]models.MenuItem, error) {
	return f.snap.MenuItems(), nil
}

func (f *fakeCatalog) MenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := f.snap.MenuItemByID(id)
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "menu item not found")
	}
	return &item, nil
}

type fakeStock struct {
	applied map[uuid.UUID]deduction.Plan
	fail    error
}

func (f *fakeStock) ApplyPlan(ctx context.Context, orderID uuid.UUID, plan deduction.Plan) error {
	if f.fail != nil {
		return f.fail
	}
	if f.applied == nil {
		f.applied = map[uuid.UUID]deduction.Plan{}
	}
	f.applied[orderID] = plan
	return nil
}

func (f *fakeStock) List(ctx context.Context, location *enums.StockLocation) ([]models.StockItem, error) {
	return nil, nil
}

func (f *fakeStock) Get(ctx context.Context, id uuid.UUID) (*models.StockItem, error) {
	return nil, errors.New(errors.CodeNotFound, "stock item not found")
}

func (f *fakeStock) Adjust(ctx context.Context, input stock.AdjustStockInput) (*models.StockItem, error) {
	return nil, errors.New(errors.CodeNotFound, "stock item not found")
}

type fakeSettings struct {
	open bool
}

func (f *fakeSettings) Get(ctx context.Context) (*models.StoreSettings, error) {
	return &models.StoreSettings{}, nil
}

func (f *fakeSettings) Update(ctx context.Context, input settings.UpdateSettingsInput) (*models.StoreSettings, error) {
	return nil, nil
}

func (f *fakeSettings) IsOpenAt(ctx context.Context, at time.Time) (bool, error) {
	return f.open, nil
}

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.NewSnapshot(
		[]models.MenuItem{
			{ID: kidsMealID, Name: "Kids Meal", Category: enums.MenuCategoryKids, BasePricePence: 1000, PrepTimeMinutes: 8},
			{ID: deluxeID, Name: "Deluxe Steak & Fries", Category: enums.MenuCategoryMain, BasePricePence: 2000, PrepTimeMinutes: 12},
			{ID: steakFriesID, Name: "Steak & Fries", Category: enums.MenuCategoryMain, BasePricePence: 1200, PrepTimeMinutes: 10},
		},
		[]models.AddonPrice{
			{Name: "Coke", UnitPricePence: 150},
			{Name: "Green Sauce", UnitPricePence: 50},
			{Name: "Steak", UnitPricePence: 1000},
			{Name: "Lamb", UnitPricePence: 1100},
		},
		catalog.DefaultPolicyTable(),
	)
	if err != nil {
		t.Fatalf("building snapshot: %v", err)
	}
	return snap
}

var dbCounter int

type testHarness struct {
	svc      Service
	stock    *fakeStock
	settings *fakeSettings
	repo     Repository
}

func newTestService(t *testing.T) *testHarness {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:ordertest%d?mode=memory&cache=shared", dbCounter)
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&models.Order{}, &models.OrderLineItem{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	repo := NewRepository(client.DB())
	stockFake := &fakeStock{}
	settingsFake := &fakeSettings{open: true}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(
		client,
		repo,
		&fakeCatalog{snap: testSnapshot(t)},
		stockFake,
		settingsFake,
		deduction.DefaultRuleTable(),
		logg,
		metrics.NewOrderMetrics(nil),
	)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return &testHarness{svc: svc, stock: stockFake, settings: settingsFake, repo: repo}
}

func kidsMealOrder() CreateOrderInput {
	return CreateOrderInput{
		CustomerName: "Sam",
		Lines: []QuoteLineInput{
			{
				MenuItemID: kidsMealID,
				Quantity:   1,
				Addons: types.AddonSelections{
					{Name: "Coke", Quantity: 2},
					{Name: "Green Sauce", Quantity: 1},
				},
			},
		},
	}
}

func TestQuote(t *testing.T) {
	h := newTestService(t)

	quote, err := h.svc.Quote(context.Background(), QuoteInput{Lines: kidsMealOrder().Lines})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.TotalPence != 1150 {
		t.Fatalf("expected 1150p, got %d", quote.TotalPence)
	}
	if len(quote.Lines) != 1 || len(quote.Lines[0].FreeAddonsApplied) != 2 {
		t.Fatalf("unexpected quote lines: %+v", quote.Lines)
	}
}

func TestQuoteRejectsUnknownAddon(t *testing.T) {
	h := newTestService(t)

	_, err := h.svc.Quote(context.Background(), QuoteInput{
		Lines: []QuoteLineInput{{
			MenuItemID: steakFriesID,
			Quantity:   1,
			Addons:     types.AddonSelections{{Name: "Truffle Oil", Quantity: 1}},
		}},
	})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodePricing {
		t.Fatalf("expected PRICING_ERROR, got %v", err)
	}
	if typed.Details() == nil {
		t.Fatalf("pricing error should carry line details")
	}
}

func TestCreatePersistsAndDeducts(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	input := CreateOrderInput{
		CustomerName: "Alex",
		Lines: []QuoteLineInput{
			{
				MenuItemID: deluxeID,
				Quantity:   1,
				Addons:     types.AddonSelections{{Name: "Lamb", Quantity: 1}},
			},
		},
	}
	order, err := h.svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.DisplayID != "#001" {
		t.Fatalf("expected display id #001, got %s", order.DisplayID)
	}
	if order.TotalPence != 3100 {
		t.Fatalf("expected 3100p total, got %d", order.TotalPence)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("new orders start pending, got %s", order.Status)
	}

	plan, ok := h.stock.applied[order.ID]
	if !ok {
		t.Fatalf("deduction plan was not applied")
	}
	if plan["Steaks"] != 2 || plan["Lamb"] != 2 {
		t.Fatalf("unexpected plan: %v", plan)
	}

	stored, err := h.repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("reloading order: %v", err)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("expected 1 stored line, got %d", len(stored.Lines))
	}
	if stored.Lines[0].LineTotalPence != 3100 {
		t.Fatalf("stored line total mismatch: %d", stored.Lines[0].LineTotalPence)
	}

	second, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.DisplayID != "#002" {
		t.Fatalf("display ids should increment, got %s", second.DisplayID)
	}
}

func TestCreateRejectedWhileClosed(t *testing.T) {
	h := newTestService(t)
	h.settings.open = false

	_, err := h.svc.Create(context.Background(), kidsMealOrder())
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeStoreClosed {
		t.Fatalf("expected STORE_CLOSED, got %v", err)
	}
	if len(h.stock.applied) != 0 {
		t.Fatalf("no deduction may happen for rejected orders")
	}
}

func TestCreateRejectsTotalMismatch(t *testing.T) {
	h := newTestService(t)

	input := kidsMealOrder()
	wrong := int64(999)
	input.ClientTotalPence = &wrong

	_, err := h.svc.Create(context.Background(), input)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodePricing {
		t.Fatalf("expected PRICING_ERROR, got %v", err)
	}
	if len(h.stock.applied) != 0 {
		t.Fatalf("no deduction may happen for rejected orders")
	}
}

func TestCreateAcceptsMatchingClientTotal(t *testing.T) {
	h := newTestService(t)

	input := kidsMealOrder()
	right := int64(1150)
	input.ClientTotalPence = &right

	if _, err := h.svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create with matching total failed: %v", err)
	}
}

func TestUpdateStatusPipeline(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	order, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := h.svc.UpdateStatus(ctx, order.ID, enums.OrderStatusReady); err == nil {
		t.Fatalf("skipping pipeline stages must be rejected")
	}

	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPreparing,
		enums.OrderStatusCooking,
		enums.OrderStatusReady,
	} {
		if _, err := h.svc.UpdateStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	completed, err := h.svc.UpdateStatus(ctx, order.ID, enums.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("completing failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("terminal status must stamp completed_at")
	}

	_, err = h.svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPreparing)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeStateConflict {
		t.Fatalf("terminal orders accept no transitions, got %v", err)
	}
}

func TestCreateReassignsCollidingDisplayID(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	first, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Deleting the first order shrinks the count, so the next
	// count-derived display id lands on the surviving order's number.
	if err := h.svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	third, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create after delete failed: %v", err)
	}
	if third.DisplayID == second.DisplayID {
		t.Fatalf("display id %s reused", third.DisplayID)
	}
	if third.DisplayID != "#003" {
		t.Fatalf("expected #003, got %s", third.DisplayID)
	}
}

func TestUpdateEditsMetadataOnly(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	order, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	name := "Samantha"
	notes := "no ice"
	updated, err := h.svc.Update(ctx, order.ID, UpdateOrderInput{
		CustomerName: &name,
		Notes:        &notes,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CustomerName != "Samantha" {
		t.Fatalf("expected renamed customer, got %q", updated.CustomerName)
	}
	if updated.Notes == nil || *updated.Notes != "no ice" {
		t.Fatalf("expected notes saved, got %v", updated.Notes)
	}
	if updated.TotalPence != order.TotalPence {
		t.Fatalf("total must not change on edit")
	}

	empty := "  "
	if _, err := h.svc.Update(ctx, order.ID, UpdateOrderInput{CustomerName: &empty}); err == nil {
		t.Fatalf("expected validation error for blank name")
	}
}

func TestDeleteOrder(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	order, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := h.svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := h.svc.Get(ctx, order.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestListActiveOnly(t *testing.T) {
	h := newTestService(t)
	ctx := context.Background()

	first, err := h.svc.Create(ctx, kidsMealOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := h.svc.Create(ctx, kidsMealOrder()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPreparing,
		enums.OrderStatusCooking,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
	} {
		if _, err := h.svc.UpdateStatus(ctx, first.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	active, err := h.svc.List(ctx, ListFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active order, got %d", len(active))
	}

	all, err := h.svc.List(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}

func TestParseLegacyAddons(t *testing.T) {
	cases := []struct {
		name    string
		raw     []string
		want    types.AddonSelections
		wantErr bool
	}{
		{
			name: "bare names default to one",
			raw:  []string{"Coke", "Green Sauce"},
			want: types.AddonSelections{{Name: "Coke", Quantity: 1}, {Name: "Green Sauce", Quantity: 1}},
		},
		{
			name: "xN suffix sets quantity",
			raw:  []string{"Steak x2", "Coke x1"},
			want: types.AddonSelections{{Name: "Steak", Quantity: 2}, {Name: "Coke", Quantity: 1}},
		},
		{
			name:    "zero quantity rejected",
			raw:     []string{"Coke x0"},
			wantErr: true,
		},
		{
			name: "empty input",
			raw:  nil,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLegacyAddons(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("want %v got %v", tc.want, got)
				}
			}
		})
	}
}
