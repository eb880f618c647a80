package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, barcode, city string, cod string, driverID *uint) *models.Order {
	t.Helper()
	order := &models.Order{
		Barcode:          barcode,
		RecipientName:    "Recipient " + barcode,
		RecipientPhone1:  "0100" + barcode,
		RecipientCity:    city,
		RecipientAddress: "Street 1",
		CODAmount:        models.NewMoneyFromDecimal(decimal.RequireFromString(cod)),
		Status:           constants.OrderStatusEntered,
		DriverID:         driverID,
	}
	if err := NewOrderRepository(db).Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func createTestDriver(t *testing.T, db *gorm.DB, name, phone string, areas ...string) *models.Driver {
	t.Helper()
	driver := &models.Driver{Name: name, Phone: phone, AssignedAreas: datatypes.JSONSlice[string](areas)}
	if err := NewDriverRepository(db).Create(driver); err != nil {
		t.Fatalf("create driver failed: %v", err)
	}
	return driver
}

func TestOrderRepositoryListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	driver := createTestDriver(t, db, "Hassan", "01000000001")

	createTestOrder(t, db, "A1", "Cairo", "10", nil)
	createTestOrder(t, db, "A2", "cairo", "20", &driver.ID)
	createTestOrder(t, db, "A3", "Giza", "30", nil)

	orders, total, err := repo.List(OrderListFilter{City: "CAIRO", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by city failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 cairo orders, got total=%d len=%d", total, len(orders))
	}

	_, total, err = repo.List(OrderListFilter{Unassigned: true})
	if err != nil {
		t.Fatalf("list unassigned failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 unassigned orders, got %d", total)
	}

	orders, total, err = repo.List(OrderListFilter{DriverID: &driver.ID})
	if err != nil {
		t.Fatalf("list by driver failed: %v", err)
	}
	if total != 1 || orders[0].Barcode != "A2" {
		t.Fatalf("unexpected driver orders: total=%d orders=%+v", total, orders)
	}
	if orders[0].Driver == nil || orders[0].Driver.Name != "Hassan" {
		t.Fatalf("expected driver preloaded, got %+v", orders[0].Driver)
	}

	_, total, err = repo.List(OrderListFilter{Search: "recipient a3"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one search hit, got %d", total)
	}
}

func TestOrderRepositoryGetByBarcodeMissingReturnsNil(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)

	order, err := repo.GetByBarcode("missing")
	if err != nil {
		t.Fatalf("get by barcode failed: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil order, got %+v", order)
	}
}

func TestOrderRepositoryDeleteRemovesHistory(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, db, "D1", "Cairo", "5", nil)
	logRepo := NewOrderStatusLogRepository(db)
	if err := logRepo.Create(&models.OrderStatusLog{OrderID: order.ID, ToStatus: constants.OrderStatusEntered}); err != nil {
		t.Fatalf("create log failed: %v", err)
	}

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	logs, err := logRepo.ListByOrder(order.ID)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected history removed, got %d rows", len(logs))
	}
}

func TestOrderRepositoryFindInBatches(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	for i := 0; i < 5; i++ {
		createTestOrder(t, db, fmt.Sprintf("B%d", i), "Cairo", "1", nil)
	}

	var seen []string
	batches := 0
	err := repo.FindInBatches(OrderListFilter{}, 2, func(batch []models.Order) error {
		batches++
		for _, order := range batch {
			seen = append(seen, order.Barcode)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("find in batches failed: %v", err)
	}
	if batches != 3 || len(seen) != 5 {
		t.Fatalf("expected 3 batches over 5 orders, got batches=%d seen=%v", batches, seen)
	}
	if seen[0] != "B0" || seen[4] != "B4" {
		t.Fatalf("expected id order, got %v", seen)
	}
}

func TestDriverRepositoryAreaAndName(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDriverRepository(db)
	first := createTestDriver(t, db, "Ali", "01000000001", "Nasr City", "Maadi")
	createTestDriver(t, db, "Ali", "01000000002", "Giza")

	drivers, total, err := repo.List(DriverListFilter{Area: "Maadi"})
	if err != nil {
		t.Fatalf("list by area failed: %v", err)
	}
	if total != 1 || drivers[0].ID != first.ID {
		t.Fatalf("unexpected area result: total=%d drivers=%+v", total, drivers)
	}

	found, err := repo.FindFirstByName(" Ali ")
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found == nil || found.ID != first.ID {
		t.Fatalf("expected first driver by id, got %+v", found)
	}

	byPhone, err := repo.GetByPhone("01000000002")
	if err != nil {
		t.Fatalf("get by phone failed: %v", err)
	}
	if byPhone == nil || byPhone.Name != "Ali" {
		t.Fatalf("unexpected driver by phone: %+v", byPhone)
	}
}

func TestCityRepositoryCaseInsensitiveName(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCityRepository(db)
	if err := repo.Create(&models.City{Name: " Cairo "}); err != nil {
		t.Fatalf("create city failed: %v", err)
	}

	city, err := repo.GetByName("CAIRO")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if city == nil || city.Name != "Cairo" {
		t.Fatalf("expected trimmed Cairo, got %+v", city)
	}
	if err := repo.Create(&models.City{Name: "cairo"}); err == nil {
		t.Fatalf("expected unique index to reject case-insensitive duplicate")
	}
}

func TestProductRepositoryAdjustQuantity(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := &models.Product{Name: "Box", Quantity: 3, Unit: constants.ProductUnitCarton}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	updated, err := repo.AdjustQuantity(product.ID, -2)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", updated.Quantity)
	}
	if _, err := repo.AdjustQuantity(product.ID, -2); err != ErrInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	missing, err := repo.AdjustQuantity(product.ID+100, 1)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing product, got %+v err=%v", missing, err)
	}

	threshold := 1
	_, total, err := repo.List(ProductListFilter{LowStockThreshold: &threshold})
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one low stock product, got %d", total)
	}
}

func TestDelegateSheetRepositoryCreateWithItems(t *testing.T) {
	db := setupRepositoryTestDB(t)
	driver := createTestDriver(t, db, "Karim", "01000000009")
	a := createTestOrder(t, db, "S1", "Cairo", "100", &driver.ID)
	b := createTestOrder(t, db, "S2", "Cairo", "250.50", &driver.ID)

	repo := NewDelegateSheetRepository(db)
	sheet := &models.DelegateSheet{
		Barcode:     "0912345678",
		DriverID:    driver.ID,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("350.50")),
		OrderCount:  2,
		Items: []models.DelegateSheetItem{
			{OrderID: a.ID, Barcode: a.Barcode, CODAmount: a.CODAmount},
			{OrderID: b.ID, Barcode: b.Barcode, CODAmount: b.CODAmount},
		},
	}
	if err := repo.Create(sheet); err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}

	loaded, err := repo.GetByBarcode("0912345678")
	if err != nil {
		t.Fatalf("get sheet failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 2 {
		t.Fatalf("expected sheet with 2 items, got %+v", loaded)
	}
	if loaded.Items[1].Order == nil || loaded.Items[1].Order.Barcode != "S2" {
		t.Fatalf("expected preloaded order on item, got %+v", loaded.Items[1])
	}
	if loaded.TotalAmount.String() != "350.50" {
		t.Fatalf("unexpected total: %s", loaded.TotalAmount.String())
	}

	onSheets, err := repo.ListOrderIDsOnSheets([]uint{a.ID, b.ID, b.ID + 10})
	if err != nil {
		t.Fatalf("list order ids failed: %v", err)
	}
	if len(onSheets) != 2 {
		t.Fatalf("expected 2 referenced orders, got %v", onSheets)
	}
	refs, err := NewOrderRepository(db).CountSheetReferences(a.ID)
	if err != nil || refs != 1 {
		t.Fatalf("expected one sheet reference, got %d err=%v", refs, err)
	}
}

func TestDashboardRepositoryAggregates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	driver := createTestDriver(t, db, "Youssef", "01000000003")
	createTestDriver(t, db, "Idle", "01000000004")

	createTestOrder(t, db, "C1", "Cairo", "100", &driver.ID)
	delivered := createTestOrder(t, db, "C2", "Cairo", "50", &driver.ID)
	if err := NewOrderRepository(db).UpdateFields(delivered.ID, map[string]interface{}{"status": constants.OrderStatusDelivered}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	createTestOrder(t, db, "C3", "Giza", "25", nil)

	counts, err := repo.CountOrdersByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.OrderStatusEntered] != 2 || counts[constants.OrderStatusDelivered] != 1 || counts[constants.OrderStatusFullReturn] != 0 {
		t.Fatalf("unexpected status counts: %+v", counts)
	}

	all, err := repo.SumCOD(nil)
	if err != nil {
		t.Fatalf("sum cod failed: %v", err)
	}
	if !all.Equal(decimal.NewFromInt(175)) {
		t.Fatalf("expected 175, got %s", all.String())
	}
	outstanding, err := repo.SumCOD(OpenOrderStatuses())
	if err != nil {
		t.Fatalf("sum outstanding failed: %v", err)
	}
	if !outstanding.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected 125 outstanding, got %s", outstanding.String())
	}

	unassigned, err := repo.CountUnassignedOrders()
	if err != nil || unassigned != 1 {
		t.Fatalf("expected 1 unassigned, got %d err=%v", unassigned, err)
	}

	rows, err := repo.DriverSummaries()
	if err != nil {
		t.Fatalf("driver summaries failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both drivers listed, got %+v", rows)
	}
	var busy DashboardDriverRow
	for _, row := range rows {
		if row.DriverID == driver.ID {
			busy = row
		}
	}
	if busy.OrdersTotal != 2 || busy.OrdersOpen != 1 || busy.OrdersDone != 1 {
		t.Fatalf("unexpected driver counts: %+v", busy)
	}
	if !busy.CODTotal.Equal(decimal.NewFromInt(150)) || !busy.CODOutstanding.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected driver cod: total=%s outstanding=%s", busy.CODTotal, busy.CODOutstanding)
	}

	sheets, err := repo.CountSheetsSince(time.Now().Add(-time.Hour))
	if err != nil || sheets != 0 {
		t.Fatalf("expected no sheets, got %d err=%v", sheets, err)
	}
}
