package service

import (
	"context"
	"time"

	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/repository"
)

const (
	dashboardStatsCacheKey   = "dashboard:stats"
	dashboardDriversCacheKey = "dashboard:drivers"
	dashboardDefaultTTL      = 60 * time.Second
	dashboardTrendDays       = 7
)

// DashboardService back-office statistics behind a TTL cache.
// Every order, sheet, product or import write calls Invalidate.
type DashboardService struct {
	repo      repository.DashboardRepository
	store     cache.Store
	ttl       time.Duration
	inventory config.InventoryConfig
	now       func() time.Time
}

// NewDashboardService creates the dashboard service
func NewDashboardService(repo repository.DashboardRepository, store cache.Store, dashboardCfg config.DashboardConfig, inventoryCfg config.InventoryConfig) *DashboardService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	ttl := time.Duration(dashboardCfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = dashboardDefaultTTL
	}
	return &DashboardService{
		repo:      repo,
		store:     store,
		ttl:       ttl,
		inventory: inventoryCfg,
		now:       time.Now,
	}
}

// DashboardStats home page figures
type DashboardStats struct {
	OrdersTotal      int64                 `json:"orders_total"`
	OrdersByStatus   map[string]int64      `json:"orders_by_status"`
	UnassignedOrders int64                 `json:"unassigned_orders"`
	CODTotal         string                `json:"cod_total"`
	CODDelivered     string                `json:"cod_delivered"`
	CODOutstanding   string                `json:"cod_outstanding"`
	Drivers          int64                 `json:"drivers"`
	Cities           int64                 `json:"cities"`
	SheetsToday      int64                 `json:"sheets_today"`
	LowStockProducts int64                 `json:"low_stock_products"`
	ExpiringProducts int64                 `json:"expiring_products"`
	Trend            []DashboardTrendPoint `json:"trend"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// DashboardTrendPoint orders created and delivered on one day
type DashboardTrendPoint struct {
	Date      string `json:"date"`
	Created   int64  `json:"created"`
	Delivered int64  `json:"delivered"`
}

// DashboardDriverSummary per-driver order and COD totals
type DashboardDriverSummary struct {
	DriverID       uint   `json:"driver_id"`
	DriverName     string `json:"driver_name"`
	OrdersTotal    int64  `json:"orders_total"`
	OrdersOpen     int64  `json:"orders_open"`
	OrdersDone     int64  `json:"orders_done"`
	CODTotal       string `json:"cod_total"`
	CODOutstanding string `json:"cod_outstanding"`
}

// GetStats returns cached stats unless forceRefresh is set
func (s *DashboardService) GetStats(ctx context.Context, forceRefresh bool) (*DashboardStats, error) {
	if !forceRefresh {
		var cached DashboardStats
		hit, err := s.store.GetJSON(ctx, dashboardStatsCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_cache_read_failed", "key", dashboardStatsCacheKey, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := s.buildStats()
	if err != nil {
		return nil, err
	}
	if err := s.store.SetJSON(ctx, dashboardStatsCacheKey, stats, s.ttl); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "key", dashboardStatsCacheKey, "error", err)
	}
	return stats, nil
}

func (s *DashboardService) buildStats() (*DashboardStats, error) {
	now := s.now()
	byStatus, err := s.repo.CountOrdersByStatus()
	if err != nil {
		return nil, err
	}
	var total int64
	for _, count := range byStatus {
		total += count
	}
	unassigned, err := s.repo.CountUnassignedOrders()
	if err != nil {
		return nil, err
	}
	codTotal, err := s.repo.SumCOD(nil)
	if err != nil {
		return nil, err
	}
	codDelivered, err := s.repo.SumCOD([]string{constants.OrderStatusDelivered})
	if err != nil {
		return nil, err
	}
	codOutstanding, err := s.repo.SumCOD(repository.OpenOrderStatuses())
	if err != nil {
		return nil, err
	}
	drivers, err := s.repo.CountDrivers()
	if err != nil {
		return nil, err
	}
	cities, err := s.repo.CountCities()
	if err != nil {
		return nil, err
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sheetsToday, err := s.repo.CountSheetsSince(startOfDay)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.CountLowStockProducts(s.inventory.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	expiring, err := s.repo.CountExpiringProducts(now.AddDate(0, 0, s.inventory.ExpiryAlertDays))
	if err != nil {
		return nil, err
	}
	trend, err := s.buildTrend(startOfDay)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		OrdersTotal:      total,
		OrdersByStatus:   byStatus,
		UnassignedOrders: unassigned,
		CODTotal:         codTotal.StringFixed(2),
		CODDelivered:     codDelivered.StringFixed(2),
		CODOutstanding:   codOutstanding.StringFixed(2),
		Drivers:          drivers,
		Cities:           cities,
		SheetsToday:      sheetsToday,
		LowStockProducts: lowStock,
		ExpiringProducts: expiring,
		Trend:            trend,
		GeneratedAt:      now,
	}, nil
}

// buildTrend fills every day of the window, including days without orders
func (s *DashboardService) buildTrend(startOfToday time.Time) ([]DashboardTrendPoint, error) {
	start := startOfToday.AddDate(0, 0, -(dashboardTrendDays - 1))
	rows, err := s.repo.GetOrderTrends(start, startOfToday.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	points := make([]DashboardTrendPoint, 0, dashboardTrendDays)
	for i := 0; i < dashboardTrendDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		row := byDay[day]
		points = append(points, DashboardTrendPoint{Date: day, Created: row.Created, Delivered: row.Delivered})
	}
	return points, nil
}

// DriverSummaries per-driver totals, cached with the same TTL as stats
func (s *DashboardService) DriverSummaries(ctx context.Context, forceRefresh bool) ([]DashboardDriverSummary, error) {
	if !forceRefresh {
		var cached []DashboardDriverSummary
		if hit, err := s.store.GetJSON(ctx, dashboardDriversCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	rows, err := s.repo.DriverSummaries()
	if err != nil {
		return nil, err
	}
	summaries := make([]DashboardDriverSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, DashboardDriverSummary{
			DriverID:       row.DriverID,
			DriverName:     row.DriverName,
			OrdersTotal:    row.OrdersTotal,
			OrdersOpen:     row.OrdersOpen,
			OrdersDone:     row.OrdersDone,
			CODTotal:       row.CODTotal.StringFixed(2),
			CODOutstanding: row.CODOutstanding.StringFixed(2),
		})
	}
	if err := s.store.SetJSON(ctx, dashboardDriversCacheKey, summaries, s.ttl); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "key", dashboardDriversCacheKey, "error", err)
	}
	return summaries, nil
}

// Invalidate drops every cached dashboard entry
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Del(ctx, dashboardStatsCacheKey, dashboardDriversCacheKey); err != nil {
		logger.Warnw("dashboard_cache_invalidate_failed", "error", err)
	}
}
