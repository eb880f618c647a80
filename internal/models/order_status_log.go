package models

import "time"

// OrderStatusLog one status change or assignment of an order
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	FromStatus string    `gorm:"type:varchar(32)" json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(32);not null" json:"to_status"`
	DriverID   *uint     `gorm:"index" json:"driver_id"`
	ActorID    uint      `gorm:"index" json:"actor_id"`
	Source     string    `gorm:"type:varchar(32)" json:"source"` // manual / bulk / delegate_sheet / import
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName table name
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
