package models

import (
	"time"

	"gorm.io/gorm"
)

// Product carries both price tiers; WholesaleAvailable gates the wholesale tier.
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CategoryID         uint           `gorm:"not null;index" json:"category_id"`
	Name               string         `gorm:"type:varchar(200);not null;index" json:"name"`
	Description        string         `gorm:"type:text" json:"description,omitempty"`
	RetailPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"retail_price"`
	WholesalePrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"wholesale_price"`
	WholesaleAvailable bool           `gorm:"not null;default:false" json:"wholesale_available"`
	Stock              int            `gorm:"not null;default:0" json:"stock"`
	ImageURL           string         `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Unit               string         `gorm:"type:varchar(40);not null;default:'piece'" json:"unit"`
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder          int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
