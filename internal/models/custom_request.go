package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomRequest is a customer ask for an item the catalog lacks.
type CustomRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	Brand     string         `gorm:"type:varchar(100)" json:"brand,omitempty"`
	Notes     string         `gorm:"type:varchar(500)" json:"notes,omitempty"`
	Status    string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CustomRequest) TableName() string {
	return "custom_requests"
}
