package enums

import "fmt"

// StockLocation names the two independently tracked physical inventories.
type StockLocation string

const (
	StockLocationTrailer StockLocation = "Trailer"
	StockLocationLockup  StockLocation = "Lockup"
)

var validStockLocations = []StockLocation{
	StockLocationTrailer,
	StockLocationLockup,
}

// String implements fmt.Stringer.
func (l StockLocation) String() string {
	return string(l)
}

// IsValid reports whether the location is recognized.
func (l StockLocation) IsValid() bool {
	for _, candidate := range validStockLocations {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseStockLocation converts a raw string into a StockLocation.
func ParseStockLocation(value string) (StockLocation, error) {
	for _, candidate := range validStockLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock location %q", value)
}
