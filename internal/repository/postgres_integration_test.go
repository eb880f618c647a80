//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB opens TEST_POSTGRES_DSN with a fresh schema.
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.DelegateSheetItem{},
		&models.DelegateSheet{},
		&models.OrderStatusLog{},
		&models.Order{},
		&models.Driver{},
		&models.City{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresSearchRepositories(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	driver := &models.Driver{Name: "Mahmoud", Phone: "01000000001", AssignedAreas: datatypes.JSONSlice[string]{"Nasr City", "Heliopolis"}}
	if err := db.Create(driver).Error; err != nil {
		t.Fatalf("create driver failed: %v", err)
	}
	drivers, total, err := NewDriverRepository(db).List(DriverListFilter{Area: "Heliopolis", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list drivers by area failed: %v", err)
	}
	if total != 1 || len(drivers) != 1 {
		t.Fatalf("expected one driver in area, got total=%d len=%d", total, len(drivers))
	}

	order := &models.Order{
		Barcode:          "ORD-PG-1",
		RecipientName:    "Sara Adel",
		RecipientPhone1:  "01111111111",
		RecipientCity:    "Cairo",
		RecipientAddress: "12 Tahrir St",
		CODAmount:        models.NewMoneyFromDecimal(decimal.RequireFromString("120.50")),
		Status:           constants.OrderStatusEntered,
	}
	if err := NewOrderRepository(db).Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	orders, total, err := NewOrderRepository(db).List(OrderListFilter{Search: "sara", City: "CAIRO", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected ILIKE search hit, got total=%d len=%d", total, len(orders))
	}
}

func TestPostgresDashboardQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)

	order := &models.Order{
		Barcode:          "ORD-PG-2",
		RecipientName:    "Omar",
		RecipientPhone1:  "01222222222",
		RecipientCity:    "Giza",
		RecipientAddress: "Pyramids Rd",
		CODAmount:        models.NewMoneyFromDecimal(decimal.NewFromInt(75)),
		Status:           constants.OrderStatusDelivered,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	sum, err := repo.SumCOD([]string{constants.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("sum cod failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected delivered cod sum: %s", sum.String())
	}

	now := time.Now()
	trends, err := repo.GetOrderTrends(now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("order trends failed: %v", err)
	}
	if len(trends) == 0 || trends[len(trends)-1].Delivered != 1 {
		t.Fatalf("unexpected trends: %+v", trends)
	}
}
