package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acedk/steakout-backend/internal/pricing"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

// QuoteLineInput is one cart line submitted for pricing.
type QuoteLineInput struct {
	MenuItemID uuid.UUID             `json:"menu_item_id"`
	Quantity   int                   `json:"quantity"`
	Addons     types.AddonSelections `json:"addons"`
}

// QuoteInput is a cart submitted for a server-side price quote.
type QuoteInput struct {
	Lines []QuoteLineInput `json:"lines"`
}

// QuoteResult is the authoritative price of a cart. Amounts are pence;
// Total is the display rendering only.
type QuoteResult struct {
	Lines      []pricing.PricedLine `json:"lines"`
	TotalPence int64                `json:"total_pence"`
	Total      string               `json:"total"`
}

// CreateOrderInput carries a new order submission. ClientTotalPence, if
// set, is verified against the server-side quote and the order is
// rejected on mismatch.
type CreateOrderInput struct {
	CustomerName     string           `json:"customer_name"`
	Lines            []QuoteLineInput `json:"lines"`
	ClientTotalPence *int64           `json:"client_total_pence"`
	PaymentRef       *string          `json:"payment_ref"`
	Notes            *string          `json:"notes"`
}

// UpdateOrderInput carries an admin edit. Nil fields are left
// untouched; priced lines are immutable once the order exists.
type UpdateOrderInput struct {
	CustomerName *string
	PaymentRef   *string
	Notes        *string
}

// ListFilters narrows the order list.
type ListFilters struct {
	ActiveOnly bool
}

// ParseLegacyAddons converts the legacy "Name xN" addon strings into
// ordered selections. A bare name means quantity one.
func ParseLegacyAddons(raw []string) (types.AddonSelections, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	selections := make(types.AddonSelections, 0, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry)
		qty := 1
		if idx := strings.LastIndex(name, " x"); idx > 0 {
			if parsed, err := strconv.Atoi(name[idx+2:]); err == nil {
				if parsed <= 0 {
					return nil, fmt.Errorf("invalid addon quantity in %q", entry)
				}
				qty = parsed
				name = strings.TrimSpace(name[:idx])
			}
		}
		if name == "" {
			return nil, fmt.Errorf("empty addon name in %q", entry)
		}
		selections = append(selections, types.AddonSelection{Name: name, Quantity: qty})
	}
	return selections, nil
}
