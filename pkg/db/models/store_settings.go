package models

import (
	"time"

	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/acedk/steakout-backend/pkg/types"
	"github.com/google/uuid"
)

// StoreSettings is a single-row table holding opening hours and the
// manual open/closed override.
type StoreSettings struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ScheduleOverride enums.ScheduleOverride `gorm:"column:schedule_override;not null;default:'none'" json:"schedule_override"`
	OpeningTimes     types.OpeningTimes     `gorm:"column:opening_times;type:jsonb" json:"opening_times"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StoreSettings) TableName() string { return "store_settings" }
