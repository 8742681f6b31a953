package catalog

import (
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Snapshot is an immutable view of the catalog: menu items, addon unit
// prices, and the free-addon policy table. Lookups never substitute
// defaults; the ok result must be checked.
type Snapshot struct {
	itemsByID   map[uuid.UUID]models.MenuItem
	itemsByName map[string]models.MenuItem
	addonPence  map[string]int64
	policies    PolicyTable
}

// NewSnapshot builds a snapshot from reference data. The policy table is
// validated; a conflicting table is rejected here so it can never reach
// pricing.
func NewSnapshot(items []models.MenuItem, addons []models.AddonPrice, policies PolicyTable) (*Snapshot, error) {
	if policies == nil {
		policies = PolicyTable{}
	}
	if err := policies.Validate(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		itemsByID:   make(map[uuid.UUID]models.MenuItem, len(items)),
		itemsByName: make(map[string]models.MenuItem, len(items)),
		addonPence:  make(map[string]int64, len(addons)),
		policies:    policies,
	}
	for _, item := range items {
		snap.itemsByID[item.ID] = item
		snap.itemsByName[item.Name] = item
	}
	for _, addon := range addons {
		snap.addonPence[addon.Name] = addon.UnitPricePence
	}
	return snap, nil
}

// MenuItemByID resolves a menu item by id.
func (s *Snapshot) MenuItemByID(id uuid.UUID) (models.MenuItem, bool) {
	item, ok := s.itemsByID[id]
	return item, ok
}

// MenuItemByName resolves a menu item by its unique name.
func (s *Snapshot) MenuItemByName(name string) (models.MenuItem, bool) {
	item, ok := s.itemsByName[name]
	return item, ok
}

// AddonPricePence resolves an addon unit price in pence.
func (s *Snapshot) AddonPricePence(name string) (int64, bool) {
	pence, ok := s.addonPence[name]
	return pence, ok
}

// Policy returns the free-addon policy for a menu item name. Items with
// no entry get the zero policy: nothing is free.
func (s *Snapshot) Policy(itemName string) FreeAddonPolicy {
	return s.policies[itemName]
}

// MenuItems returns all menu items in the snapshot.
func (s *Snapshot) MenuItems() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(s.itemsByID))
	for _, item := range s.itemsByID {
		out = append(out, item)
	}
	return out
}
