package pricing

import (
	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

// OrderLine is the unit the engine prices. Addons are an ordered
// multiset; free-unit consumption is first-match, so order matters.
// Lines are never mutated; pricing derives a PricedLine.
type OrderLine struct {
	MenuItemID uuid.UUID
	Quantity   int
	Addons     types.AddonSelections
}

// PricedLine is the derived price for one order line. All amounts are
// integer pence.
type PricedLine struct {
	MenuItemID        uuid.UUID
	Name              string
	UnitPricePence    int64
	LineTotalPence    int64
	FreeAddonsApplied []string
}

// LineError pairs a pricing failure with the index of the line that
// produced it.
type LineError struct {
	Index int
	Err   error
}

func (e LineError) Error() string { return e.Err.Error() }

func (e LineError) Unwrap() error { return e.Err }

// PriceOrderLine prices a single line against the snapshot. The line's
// free-addon policy grants at most one free drink unit and one free
// sauce unit, consumed in addon iteration order. Addon quantity
// multiplies the charge but never the free eligibility.
func PriceOrderLine(line OrderLine, snap *catalog.Snapshot) (*PricedLine, error) {
	if line.Quantity <= 0 {
		return nil, &InvalidLineError{Reason: "quantity must be positive"}
	}

	item, ok := snap.MenuItemByID(line.MenuItemID)
	if !ok {
		return nil, &UnknownItemError{ID: line.MenuItemID}
	}

	policy := snap.Policy(item.Name)
	unitPence := item.BasePricePence
	var freeApplied []string
	freeDrinkConsumed := false
	freeSauceConsumed := false

	for _, addon := range line.Addons {
		if addon.Quantity <= 0 {
			return nil, &InvalidLineError{Reason: "addon quantity must be positive"}
		}
		pence, ok := snap.AddonPricePence(addon.Name)
		if !ok {
			return nil, &UnknownAddonError{Name: addon.Name}
		}

		chargeQty := int64(addon.Quantity)
		switch {
		case !freeDrinkConsumed && policy.IsFreeDrink(addon.Name):
			freeDrinkConsumed = true
			chargeQty--
			freeApplied = append(freeApplied, addon.Name)
		case !freeSauceConsumed && policy.IsFreeSauce(addon.Name):
			freeSauceConsumed = true
			chargeQty--
			freeApplied = append(freeApplied, addon.Name)
		}
		unitPence += pence * chargeQty
	}

	return &PricedLine{
		MenuItemID:        line.MenuItemID,
		Name:              item.Name,
		UnitPricePence:    unitPence,
		LineTotalPence:    unitPence * int64(line.Quantity),
		FreeAddonsApplied: freeApplied,
	}, nil
}

// PriceOrder prices every line. Failures are line-scoped: a failed line
// never corrupts the priced results of its siblings. Callers decide
// whether any error aborts the whole order.
func PriceOrder(lines []OrderLine, snap *catalog.Snapshot) ([]PricedLine, []LineError) {
	priced := make([]PricedLine, 0, len(lines))
	var errs []LineError
	for i, line := range lines {
		result, err := PriceOrderLine(line, snap)
		if err != nil {
			errs = append(errs, LineError{Index: i, Err: err})
			continue
		}
		priced = append(priced, *result)
	}
	return priced, errs
}

// Total sums line totals in pence.
func Total(lines []PricedLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.LineTotalPence
	}
	return total
}
