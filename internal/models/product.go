package models

import "time"

// Product inventory item
type Product struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Name       string     `gorm:"type:varchar(200);index;not null" json:"name"`
	Quantity   int        `gorm:"not null;default:0" json:"quantity"`
	Price      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Unit       string     `gorm:"type:varchar(16);not null" json:"unit"` // piece / kg / carton
	Barcode    *string    `gorm:"type:varchar(64);uniqueIndex" json:"barcode"`
	ExpiryDate *time.Time `gorm:"index" json:"expiry_date"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName table name
func (Product) TableName() string {
	return "products"
}
