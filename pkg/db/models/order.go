package models

import (
	"time"

	"github.com/acedk/steakout-backend/pkg/enums"
	"github.com/google/uuid"
)

// Order is one customer order with its priced lines.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DisplayID     string            `gorm:"column:display_id;not null;uniqueIndex" json:"display_id"`
	CustomerName  string            `gorm:"column:customer_name;not null" json:"customer_name"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	TotalPence    int64             `gorm:"column:total_pence;not null" json:"total_pence"`
	PaymentRef    *string           `gorm:"column:payment_ref" json:"payment_ref,omitempty"`
	EstimatedTime string            `gorm:"column:estimated_time" json:"estimated_time"`
	Notes         *string           `gorm:"column:notes" json:"notes,omitempty"`
	CompletedAt   *time.Time        `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Lines []OrderLineItem `gorm:"foreignKey:OrderID" json:"lines"`
}

func (Order) TableName() string { return "orders" }
