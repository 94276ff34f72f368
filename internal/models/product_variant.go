package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a purchasable variation of a product.
// PriceAdjustment is signed and added on top of the resolved base price.
type ProductVariant struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProductID       uint           `gorm:"not null;index" json:"product_id"`
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`
	PriceAdjustment Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"`
	Stock           *int           `json:"stock,omitempty"` // nil means no per-variant stock override
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}
