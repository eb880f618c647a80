package models

import "time"

// DelegateSheet driver settlement sheet; immutable once created
type DelegateSheet struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                     // primary key
	Barcode     string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"barcode"`     // sheet barcode
	DriverID    uint      `gorm:"index;not null" json:"driver_id"`                          // settling driver
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // sum of member COD amounts at creation
	OrderCount  int       `gorm:"not null;default:0" json:"order_count"`                    // number of member orders
	CreatorID   uint      `gorm:"index;not null;default:0" json:"creator_id"`               // staff user who saved the sheet
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                  // created at
	UpdatedAt   time.Time `json:"updated_at"`                                               // updated at

	Driver *Driver             `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"driver,omitempty"`
	Items  []DelegateSheetItem `gorm:"foreignKey:DelegateSheetID" json:"items,omitempty"`
}

// TableName table name
func (DelegateSheet) TableName() string {
	return "delegate_sheets"
}

// DelegateSheetItem order membership of a sheet, with the COD amount captured at creation
type DelegateSheetItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	DelegateSheetID uint      `gorm:"index;not null" json:"delegate_sheet_id"`
	OrderID         uint      `gorm:"index;not null" json:"order_id"`
	Barcode         string    `gorm:"type:varchar(64);not null" json:"barcode"`
	CODAmount       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"cod_amount"`
	CreatedAt       time.Time `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"order,omitempty"`
}

// TableName table name
func (DelegateSheetItem) TableName() string {
	return "delegate_sheet_items"
}
