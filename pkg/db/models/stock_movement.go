package models

import (
	"encoding/json"
	"time"

	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/google/uuid"
)

// StockMovement records one applied deduction plan. The unique order id
// makes re-applying a plan for the same order a no-op.
type StockMovement struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Location  enums.StockLocation `gorm:"column:location;not null"`
	Plan      json.RawMessage     `gorm:"column:plan;type:jsonb"`
	Clamped   bool                `gorm:"column:clamped;not null;default:false"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (StockMovement) TableName() string { return "stock_movements" }
