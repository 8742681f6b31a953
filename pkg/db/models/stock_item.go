package models

import (
	"time"

	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/google/uuid"
)

// StockItem is one inventory row per (name, location). Quantity is
// mutated only through the ledger applier or manual admin adjustment.
type StockItem struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name              string              `gorm:"column:name;not null;uniqueIndex:idx_stock_name_location" json:"name"`
	Category          string              `gorm:"column:category" json:"category"`
	Location          enums.StockLocation `gorm:"column:location;not null;uniqueIndex:idx_stock_name_location" json:"location"`
	Quantity          int                 `gorm:"column:quantity;not null;default:0" json:"quantity"`
	LowStockThreshold int                 `gorm:"column:low_stock_threshold;not null;default:5" json:"low_stock_threshold"`
	Supplier          string              `gorm:"column:supplier" json:"supplier"`
	Notes             string              `gorm:"column:notes" json:"notes"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StockItem) TableName() string { return "stock_items" }

// IsLow reports whether the row has fallen to or below its threshold.
func (s StockItem) IsLow() bool {
	return s.Quantity <= s.LowStockThreshold
}
