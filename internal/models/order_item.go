package models

import (
	"time"
)

// OrderItem is one order line. Name and UnitPrice are frozen from the
// cart snapshot at checkout; later catalog edits do not touch them.
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	VariantID   *uint     `gorm:"index" json:"variant_id,omitempty"`
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`
	VariantName string    `gorm:"type:varchar(100)" json:"variant_name,omitempty"`
	Unit        string    `gorm:"type:varchar(40)" json:"unit,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
