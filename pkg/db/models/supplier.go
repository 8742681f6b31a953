package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a back-office contact record for restocking.
type Supplier struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string { return "suppliers" }
