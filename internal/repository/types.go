package repository

import "time"

// OrderListFilter order list conditions
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	DriverID    *uint
	Unassigned  bool
	City        string
	Barcode     string
	Search      string
	CreatorID   uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DriverListFilter driver list conditions
type DriverListFilter struct {
	Page     int
	PageSize int
	Search   string
	Area     string
}

// CityListFilter city list conditions
type CityListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// UserListFilter user list conditions
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	Search   string
}

// ProductListFilter product list conditions
type ProductListFilter struct {
	Page              int
	PageSize          int
	Search            string
	Unit              string
	LowStockThreshold *int
	ExpiringBefore    *time.Time
}

// DelegateSheetListFilter delegate sheet list conditions
type DelegateSheetListFilter struct {
	Page        int
	PageSize    int
	DriverID    uint
	Barcode     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
