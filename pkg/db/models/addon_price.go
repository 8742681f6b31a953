package models

import "time"

// AddonPrice is the add-on price table. Name is the join key rather
// than an id: the same conceptual item ("Steak") exists both as a menu
// item and as an add-on at a different price.
type AddonPrice struct {
	Name            string    `gorm:"column:name;primaryKey" json:"name"`
	UnitPricePence  int64     `gorm:"column:unit_price_pence;not null" json:"unit_price_pence"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AddonPrice) TableName() string { return "addon_prices" }
