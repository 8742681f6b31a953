package deduction

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rule converts one unit of an ordered item or addon into stock
// consumption.
type Rule struct {
	StockItem string `json:"stock_item"`
	Units     int64  `json:"units"`
}

// RuleTable maps exact menu-item and addon names to stock consumption
// rules. Names with no entry deduct nothing; that is valid, not an
// error. Matching is exact, never by substring, so "Steak Only" and
// "Steak & Fries" can never collide.
type RuleTable struct {
	Items    map[string][]Rule `json:"items"`
	Addons   map[string][]Rule `json:"addons"`
	NoDeduct []string          `json:"no_deduct"`
}

// Validate rejects rules with non-positive units or empty stock names.
func (t RuleTable) Validate() error {
	check := func(kind, name string, rules []Rule) error {
		for _, rule := range rules {
			if rule.StockItem == "" {
				return fmt.Errorf("%s rule for %q has empty stock item", kind, name)
			}
			if rule.Units <= 0 {
				return fmt.Errorf("%s rule for %q has non-positive units %d", kind, name, rule.Units)
			}
		}
		return nil
	}
	for name, rules := range t.Items {
		if err := check("item", name, rules); err != nil {
			return err
		}
	}
	for name, rules := range t.Addons {
		if err := check("addon", name, rules); err != nil {
			return err
		}
	}
	return nil
}

func (t RuleTable) isNoDeduct(name string) bool {
	for _, v := range t.NoDeduct {
		if v == name {
			return true
		}
	}
	return false
}

// DefaultRuleTable returns the built-in consumption rules. Deluxe mains
// and the heavier proteins consume two raw units; condiments and fries
// are excluded outright.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		Items: map[string][]Rule{
			"Deluxe Steak & Fries": {{StockItem: "Steaks", Units: 2}},
			"Steak & Fries":        {{StockItem: "Steaks", Units: 1}},
			"Steak Only":           {{StockItem: "Steaks", Units: 1}},
			"Kids Meal":            {{StockItem: "Steaks", Units: 1}},
			"Coke":                 {{StockItem: "Coke", Units: 1}},
			"Coke Zero":            {{StockItem: "Coke Zero", Units: 1}},
			"Tango Mango":          {{StockItem: "Tango Mango", Units: 1}},
			"Sprite":               {{StockItem: "Sprite", Units: 1}},
		},
		Addons: map[string][]Rule{
			"Steak":       {{StockItem: "Steaks", Units: 1}},
			"Lamb":        {{StockItem: "Lamb", Units: 2}},
			"Short Rib":   {{StockItem: "Short Rib", Units: 2}},
			"Coke":        {{StockItem: "Coke", Units: 1}},
			"Coke Zero":   {{StockItem: "Coke Zero", Units: 1}},
			"Tango Mango": {{StockItem: "Tango Mango", Units: 1}},
			"Sprite":      {{StockItem: "Sprite", Units: 1}},
		},
		NoDeduct: []string{"Fries", "Chip Seasoning", "Green Sauce", "Mayo", "Ketchup"},
	}
}

// LoadRuleTable reads a rule table from a JSON file. An empty path
// returns the default table. The loaded table is validated.
func LoadRuleTable(path string) (RuleTable, error) {
	table := DefaultRuleTable()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return RuleTable{}, fmt.Errorf("reading rule table %q: %w", path, err)
		}
		table = RuleTable{}
		if err := json.Unmarshal(b, &table); err != nil {
			return RuleTable{}, fmt.Errorf("parsing rule table %q: %w", path, err)
		}
	}
	if err := table.Validate(); err != nil {
		return RuleTable{}, err
	}
	return table, nil
}
