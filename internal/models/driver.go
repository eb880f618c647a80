package models

import (
	"time"

	"gorm.io/datatypes"
)

// Driver delivery delegate
type Driver struct {
	ID            uint                        `gorm:"primarykey" json:"id"`                                // primary key
	Name          string                      `gorm:"type:varchar(200);index;not null" json:"name"`        // display name, also used to resolve imports
	Phone         string                      `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`  // unique phone
	IDNumber      string                      `gorm:"type:varchar(64)" json:"id_number"`                   // national id
	AssignedAreas datatypes.JSONSlice[string] `gorm:"type:json" json:"assigned_areas"`                     // area names
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`                             // created at
	UpdatedAt     time.Time                   `json:"updated_at"`                                          // updated at
}

// TableName table name
func (Driver) TableName() string {
	return "drivers"
}
