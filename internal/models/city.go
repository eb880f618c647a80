package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// City delivery city; NameKey enforces case-insensitive uniqueness
type City struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	NameKey   string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (City) TableName() string {
	return "cities"
}

// CityNameKey folds a city name for comparison.
func CityNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps NameKey in sync with Name.
func (c *City) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.NameKey = CityNameKey(c.Name)
	return nil
}
