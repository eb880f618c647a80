package models

import "time"

// Order courier shipment
type Order struct {
	ID                  uint       `gorm:"primarykey" json:"id"`                                          // primary key
	Barcode             string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"barcode"`          // shipment barcode
	RecipientName       string     `gorm:"type:varchar(200);not null" json:"recipient_name"`              // consignee name
	RecipientPhone1     string     `gorm:"type:varchar(32);index;not null" json:"recipient_phone1"`       // primary phone
	RecipientPhone2     string     `gorm:"type:varchar(32)" json:"recipient_phone2"`                      // secondary phone
	RecipientCity       string     `gorm:"type:varchar(120);index;not null" json:"recipient_city"`        // free-text city, matched against cities by name
	RecipientAddress    string     `gorm:"type:varchar(500);not null" json:"recipient_address"`           // street address
	CODAmount           Money      `gorm:"type:decimal(20,2);not null;default:0" json:"cod_amount"`       // cash to collect on delivery
	Status              string     `gorm:"type:varchar(32);index;not null" json:"status"`                 // lifecycle status
	NumberOfPieces      int        `gorm:"not null;default:1" json:"number_of_pieces"`                    // parcels in the shipment
	OrderDescription    string     `gorm:"type:varchar(500)" json:"order_description"`                    // goods description
	SpecialInstructions string     `gorm:"type:varchar(500)" json:"special_instructions"`                 // delivery notes
	SenderReference     string     `gorm:"type:varchar(120);index" json:"sender_reference"`               // merchant reference
	OrderDate           *time.Time `gorm:"index" json:"order_date"`                                       // merchant order date
	DriverID            *uint      `gorm:"index" json:"driver_id"`                                        // assigned driver
	CreatorID           uint       `gorm:"index;not null;default:0" json:"creator_id"`                    // staff user who entered the order
	CreatedAt           time.Time  `gorm:"index" json:"created_at"`                                       // created at
	UpdatedAt           time.Time  `gorm:"index" json:"updated_at"`                                       // updated at

	Driver *Driver `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"driver,omitempty"`
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}
