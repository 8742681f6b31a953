package models

import (
	"time"

	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

// OrderLineItem snapshots one priced line within an order. Prices are
// copied at order time so catalog edits never re-price history.
type OrderLineItem struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	MenuItemID     uuid.UUID             `gorm:"column:menu_item_id;type:uuid;not null" json:"menu_item_id"`
	Name           string                `gorm:"column:name;not null" json:"name"`
	Quantity       int                   `gorm:"column:quantity;not null" json:"quantity"`
	Addons         types.AddonSelections `gorm:"column:addons;type:jsonb" json:"addons"`
	UnitPricePence int64                 `gorm:"column:unit_price_pence;not null" json:"unit_price_pence"`
	LineTotalPence int64                 `gorm:"column:line_total_pence;not null" json:"line_total_pence"`
	FreeAddons     types.FreeAddons      `gorm:"column:free_addons;type:jsonb" json:"free_addons"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderLineItem) TableName() string { return "order_line_items" }
