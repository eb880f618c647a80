package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testServices struct {
	db        *gorm.DB
	orders    *OrderService
	sheets    *DelegateSheetService
	imports   *ImportService
	exports   *ExportService
	drivers   *DriverService
	cities    *CityService
	users     *UserService
	products  *ProductService
	dashboard *DashboardService
	roles     *fakeRoleSyncer
}

type fakeRoleSyncer struct {
	synced  map[uint]string
	removed []uint
}

func (f *fakeRoleSyncer) SyncUserRole(userID uint, role string) error {
	if f.synced == nil {
		f.synced = map[uint]string{}
	}
	f.synced[userID] = role
	return nil
}

func (f *fakeRoleSyncer) RemoveUser(userID uint) error {
	f.removed = append(f.removed, userID)
	delete(f.synced, userID)
	return nil
}

// fixedBarcodes yields predictable barcodes; millis advances on every call
func fixedBarcodes(start int64) *BarcodeGenerator {
	millis := start
	return &BarcodeGenerator{
		now: func() time.Time {
			millis++
			return time.UnixMilli(millis)
		},
		intn: func(int) int { return 7 },
	}
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := setupServiceTestDB(t)

	orderRepo := repository.NewOrderRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	cityRepo := repository.NewCityRepository(db)
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewOrderStatusLogRepository(db)
	sheetRepo := repository.NewDelegateSheetRepository(db)
	productRepo := repository.NewProductRepository(db)
	queueClient, _ := queue.NewClient(&config.QueueConfig{Enabled: false})
	barcodes := fixedBarcodes(1700000000000)
	roles := &fakeRoleSyncer{}
	inventory := config.InventoryConfig{LowStockThreshold: 5, ExpiryAlertDays: 30}

	dashboard := NewDashboardService(repository.NewDashboardRepository(db), nil, config.DashboardConfig{CacheTTLSeconds: 60}, inventory)
	return &testServices{
		db:        db,
		orders:    NewOrderService(orderRepo, driverRepo, logRepo, queueClient, barcodes, dashboard),
		sheets:    NewDelegateSheetService(sheetRepo, orderRepo, driverRepo, logRepo, queueClient, barcodes, dashboard),
		imports:   NewImportService(orderRepo, driverRepo, cityRepo, userRepo, logRepo, barcodes, roles, dashboard, 0),
		exports:   NewExportService(orderRepo, driverRepo, cityRepo, userRepo),
		drivers:   NewDriverService(driverRepo, orderRepo),
		cities:    NewCityService(cityRepo),
		users:     NewUserService(userRepo, roles, config.PasswordPolicyConfig{MinLength: 6}),
		products:  NewProductService(productRepo, inventory, dashboard),
		dashboard: dashboard,
		roles:     roles,
	}
}

func validOrderInput(barcode, cod string) OrderInput {
	return OrderInput{
		Barcode:          barcode,
		RecipientName:    "Mona",
		RecipientPhone1:  "01000000001",
		RecipientCity:    "Cairo",
		RecipientAddress: "12 Nile St",
		CODAmount:        cod,
		Status:           constants.OrderStatusEntered,
	}
}

func mustCreateOrder(t *testing.T, svc *testServices, barcode, cod string) *models.Order {
	t.Helper()
	order, err := svc.orders.CreateOrder(validOrderInput(barcode, cod), 1)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func mustCreateDriver(t *testing.T, svc *testServices, name, phone string) *models.Driver {
	t.Helper()
	driver, err := svc.drivers.CreateDriver(DriverInput{Name: name, Phone: phone})
	if err != nil {
		t.Fatalf("create driver failed: %v", err)
	}
	return driver
}

func moneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}
