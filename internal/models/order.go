package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed checkout. Payment is recorded, never charged.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNo         string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Status          string         `gorm:"type:varchar(20);index;not null" json:"status"`
	TotalPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	Wholesale       bool           `gorm:"not null;default:false" json:"wholesale"` // cart pricing mode at checkout
	DeliveryAddress string         `gorm:"type:varchar(500);not null" json:"delivery_address"`
	PaymentMethod   string         `gorm:"type:varchar(40);not null" json:"payment_method"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
