package repository

import (
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository aggregate queries for the dashboard; no business rules here.
type DashboardRepository interface {
	CountOrdersByStatus() (map[string]int64, error)
	SumCOD(statuses []string) (decimal.Decimal, error)
	CountDrivers() (int64, error)
	CountCities() (int64, error)
	CountUnassignedOrders() (int64, error)
	CountSheetsSince(since time.Time) (int64, error)
	CountLowStockProducts(threshold int) (int64, error)
	CountExpiringProducts(before time.Time) (int64, error)
	DriverSummaries() ([]DashboardDriverRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
}

// DashboardOrderTrendRow orders created and delivered per day
type DashboardOrderTrendRow struct {
	Day       string
	Created   int64
	Delivered int64
}

// DashboardDriverRow per-driver totals
type DashboardDriverRow struct {
	DriverID       uint
	DriverName     string
	OrdersTotal    int64
	OrdersOpen     int64
	OrdersDone     int64
	CODTotal       decimal.Decimal
	CODOutstanding decimal.Decimal
}

// GormDashboardRepository GORM implementation
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates the dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// OpenOrderStatuses statuses whose COD has not been collected yet
func OpenOrderStatuses() []string {
	return []string{
		constants.OrderStatusEntered,
		constants.OrderStatusAssigned,
		constants.OrderStatusOutForDelivery,
	}
}

type statusCountRow struct {
	Status string
	Total  int64
}

// CountOrdersByStatus order counts keyed by status; every known status is present
func (r *GormDashboardRepository) CountOrdersByStatus() (map[string]int64, error) {
	var rows []statusCountRow
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(constants.OrderStatuses))
	for _, status := range constants.OrderStatuses {
		result[status] = 0
	}
	for _, row := range rows {
		result[row.Status] += row.Total
	}
	return result, nil
}

// SumCOD COD total over the given statuses, or over every order when empty
func (r *GormDashboardRepository) SumCOD(statuses []string) (decimal.Decimal, error) {
	query := r.db.Model(&models.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var total models.Money
	if err := query.Select("COALESCE(SUM(cod_amount), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

// CountDrivers total drivers
func (r *GormDashboardRepository) CountDrivers() (int64, error) {
	var count int64
	err := r.db.Model(&models.Driver{}).Count(&count).Error
	return count, err
}

// CountCities total cities
func (r *GormDashboardRepository) CountCities() (int64, error) {
	var count int64
	err := r.db.Model(&models.City{}).Count(&count).Error
	return count, err
}

// CountUnassignedOrders orders without a driver
func (r *GormDashboardRepository) CountUnassignedOrders() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("driver_id IS NULL").Count(&count).Error
	return count, err
}

// CountSheetsSince delegate sheets created at or after since
func (r *GormDashboardRepository) CountSheetsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.DelegateSheet{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// CountLowStockProducts products at or under the threshold
func (r *GormDashboardRepository) CountLowStockProducts(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("quantity <= ?", threshold).Count(&count).Error
	return count, err
}

// CountExpiringProducts products expiring on or before the given time
func (r *GormDashboardRepository) CountExpiringProducts(before time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Count(&count).Error
	return count, err
}

type driverSummaryScan struct {
	DriverID       uint
	DriverName     string
	OrdersTotal    int64
	OrdersOpen     int64
	CODTotal       models.Money
	CODOutstanding models.Money
}

// DriverSummaries order totals per driver, drivers without orders included
func (r *GormDashboardRepository) DriverSummaries() ([]DashboardDriverRow, error) {
	open := OpenOrderStatuses()
	var rows []driverSummaryScan
	err := r.db.Table("drivers").
		Select(`drivers.id AS driver_id, drivers.name AS driver_name,
COUNT(orders.id) AS orders_total,
COALESCE(SUM(CASE WHEN orders.status IN ? THEN 1 ELSE 0 END), 0) AS orders_open,
COALESCE(SUM(orders.cod_amount), 0) AS cod_total,
COALESCE(SUM(CASE WHEN orders.status IN ? THEN orders.cod_amount ELSE 0 END), 0) AS cod_outstanding`, open, open).
		Joins("LEFT JOIN orders ON orders.driver_id = drivers.id").
		Group("drivers.id, drivers.name").
		Order("drivers.name asc, drivers.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]DashboardDriverRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, DashboardDriverRow{
			DriverID:       row.DriverID,
			DriverName:     row.DriverName,
			OrdersTotal:    row.OrdersTotal,
			OrdersOpen:     row.OrdersOpen,
			OrdersDone:     row.OrdersTotal - row.OrdersOpen,
			CODTotal:       row.CODTotal.Decimal,
			CODOutstanding: row.CODOutstanding.Decimal,
		})
	}
	return result, nil
}

// GetOrderTrends daily created/delivered counts in [startAt, endAt)
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	day := dayExpr(dbDialectName(r.db), "created_at")
	var rows []DashboardOrderTrendRow
	err := r.db.Model(&models.Order{}).
		Select(day+" AS day, COUNT(*) AS created, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered", constants.OrderStatusDelivered).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(day).
		Order(day + " asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
