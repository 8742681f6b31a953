package pricing

import (
	"fmt"

	"github.com/google/uuid"
)

// UnknownItemError reports an order line referencing a menu item with no
// catalog entry. Pricing for the containing order must abort.
type UnknownItemError struct {
	ID uuid.UUID
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown menu item %s", e.ID)
}

// UnknownAddonError reports an addon name with no price entry. A missing
// price is never treated as zero.
type UnknownAddonError struct {
	Name string
}

func (e *UnknownAddonError) Error() string {
	return fmt.Sprintf("unknown addon %q", e.Name)
}

// InvalidLineError reports a structurally invalid order line.
type InvalidLineError struct {
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid order line: %s", e.Reason)
}
