package models

import (
	"time"

	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/google/uuid"
)

// MenuItem is immutable reference data for the pricing engine; only
// catalog management writes it.
type MenuItem struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name            string             `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description     string             `gorm:"column:description" json:"description"`
	Category        enums.MenuCategory `gorm:"column:category;not null" json:"category"`
	BasePricePence  int64              `gorm:"column:base_price_pence;not null" json:"base_price_pence"`
	ImageURL        string             `gorm:"column:image_url" json:"image_url"`
	IsAvailable     bool               `gorm:"column:is_available;not null;default:true" json:"is_available"`
	PrepTimeMinutes int                `gorm:"column:prep_time_minutes" json:"prep_time_minutes"`
	DisplayOrder    int                `gorm:"column:display_order" json:"display_order"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MenuItem) TableName() string { return "menu_items" }
