package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/acedk/steakout-backend/pkg/errors"
)

// FreeAddonPolicy grants one free unit per category on a single order
// line. Category membership is by exact addon name.
type FreeAddonPolicy struct {
	FreeDrinks []string `json:"free_drinks"`
	FreeSauces []string `json:"free_sauces"`
}

// IsFreeDrink reports whether name is in the free-drink category.
func (p FreeAddonPolicy) IsFreeDrink(name string) bool {
	return contains(p.FreeDrinks, name)
}

// IsFreeSauce reports whether name is in the free-sauce category.
func (p FreeAddonPolicy) IsFreeSauce(name string) bool {
	return contains(p.FreeSauces, name)
}

// PolicyTable maps a menu item name to its free-addon policy. Items
// without an entry have no free addons.
type PolicyTable map[string]FreeAddonPolicy

// Validate rejects tables where an addon name appears in both free
// categories of the same item. Such a table cannot price deterministically.
func (t PolicyTable) Validate() error {
	for item, policy := range t {
		for _, drink := range policy.FreeDrinks {
			if contains(policy.FreeSauces, drink) {
				return errors.New(errors.CodePolicyConflict,
					fmt.Sprintf("addon %q listed in both free categories for item %q", drink, item))
			}
		}
	}
	return nil
}

// DefaultPolicyTable returns the built-in policy: Kids Meal includes one
// free drink and one free Green Sauce.
func DefaultPolicyTable() PolicyTable {
	return PolicyTable{
		"Kids Meal": {
			FreeDrinks: []string{"Coke", "Coke Zero", "Tango Mango", "Sprite"},
			FreeSauces: []string{"Green Sauce"},
		},
	}
}

// LoadPolicyTable reads a policy table from a JSON file. An empty path
// returns the default table. The loaded table is validated.
func LoadPolicyTable(path string) (PolicyTable, error) {
	table := DefaultPolicyTable()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading policy file %q: %w", path, err)
		}
		table = PolicyTable{}
		if err := json.Unmarshal(b, &table); err != nil {
			return nil, fmt.Errorf("parsing policy file %q: %w", path, err)
		}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
