package deduction

import (
	"github.com/acedk/steakout-backend/pkg/types"
)

// ConfirmedLine is the planner's input: the resolved menu item name,
// the ordered quantity, and the addon multiset of a confirmed order line.
type ConfirmedLine struct {
	Name     string
	Quantity int
	Addons   types.AddonSelections
}

// Plan maps stock item name to the quantity to decrement. Quantities
// are always positive; names that would deduct zero are omitted.
type Plan map[string]int64

// PlanLine computes the stock consumption of a single line.
func PlanLine(line ConfirmedLine, table RuleTable) Plan {
	plan := Plan{}
	accumulate(plan, table, table.Items[line.Name], line.Name, int64(line.Quantity))
	for _, addon := range line.Addons {
		accumulate(plan, table, table.Addons[addon.Name], addon.Name, int64(addon.Quantity)*int64(line.Quantity))
	}
	return plan
}

// PlanOrder combines all lines additively: the same stock item appearing
// from multiple lines sums.
func PlanOrder(lines []ConfirmedLine, table RuleTable) Plan {
	plan := Plan{}
	for _, line := range lines {
		for item, units := range PlanLine(line, table) {
			plan[item] += units
		}
	}
	return plan
}

func accumulate(plan Plan, table RuleTable, rules []Rule, name string, multiplier int64) {
	if multiplier <= 0 || table.isNoDeduct(name) {
		return
	}
	for _, rule := range rules {
		if table.isNoDeduct(rule.StockItem) {
			continue
		}
		plan[rule.StockItem] += rule.Units * multiplier
	}
}
