package enums

import "fmt"

// MenuCategory classifies menu items for display and ordering rules.
type MenuCategory string

const (
	MenuCategoryMain   MenuCategory = "Main"
	MenuCategoryKids   MenuCategory = "Kids"
	MenuCategoryDrinks MenuCategory = "Drinks"
	MenuCategorySides  MenuCategory = "Sides"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryMain,
	MenuCategoryKids,
	MenuCategoryDrinks,
	MenuCategorySides,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts a raw string into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}
