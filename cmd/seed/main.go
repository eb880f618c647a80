package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/provider"
	"github.com/tawseel-next/internal/service"
)

type seedOrder struct {
	barcode string
	name    string
	phone   string
	city    string
	address string
	cod     string
	status  string
	pieces  int
	driver  int // index into drivers, -1 for unassigned
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	var adminEmail, adminPassword string
	flag.StringVar(&adminEmail, "admin-email", envOr("TW_DEFAULT_ADMIN_EMAIL", "admin@tawseel.local"), "bootstrap admin email")
	flag.StringVar(&adminPassword, "admin-password", envOr("TW_DEFAULT_ADMIN_PASSWORD", "admin123"), "bootstrap admin password")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	c := provider.NewContainer(cfg)
	defer c.Close()

	admin, created, err := c.UserService.EnsureAdmin(adminEmail, adminPassword)
	if err != nil {
		stdLog.Fatalf("Failed to ensure admin: %v", err)
	}
	stdLog.Printf("Admin %s (created=%v)", admin.Email, created)

	staff := []service.UserInput{
		{Username: "entry", Email: "entry@tawseel.local", Password: adminPassword, Role: constants.RoleDataEntry},
		{Username: "accounts", Email: "accounts@tawseel.local", Password: adminPassword, Role: constants.RoleAccounts},
		{Username: "store", Email: "store@tawseel.local", Password: adminPassword, Role: constants.RoleInventory},
		{Username: "search", Email: "search@tawseel.local", Password: adminPassword, Role: constants.RoleOrderSearch},
	}
	for _, input := range staff {
		if _, err := c.UserService.CreateUser(input); err != nil {
			if errors.Is(err, service.ErrUserEmailExists) {
				stdLog.Printf("User already exists: %s", input.Email)
				continue
			}
			stdLog.Printf("Failed to create user %s: %v", input.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", input.Email, input.Role)
	}

	for _, name := range []string{"Baghdad", "Basra", "Erbil", "Najaf", "Karbala", "Mosul"} {
		if _, err := c.CityService.CreateCity(name); err != nil {
			if errors.Is(err, service.ErrCityExists) {
				continue
			}
			stdLog.Printf("Failed to create city %s: %v", name, err)
			continue
		}
		stdLog.Printf("Created city: %s", name)
	}

	driverInputs := []service.DriverInput{
		{Name: "Ali Hassan", Phone: "07701000001", IDNumber: "D-1001", AssignedAreas: []string{"Baghdad", "Karbala"}},
		{Name: "Omar Kareem", Phone: "07701000002", IDNumber: "D-1002", AssignedAreas: []string{"Basra"}},
		{Name: "Zaid Salem", Phone: "07701000003", IDNumber: "D-1003", AssignedAreas: []string{"Erbil", "Mosul"}},
	}
	driverIDs := make([]uint, len(driverInputs))
	for i, input := range driverInputs {
		driver, err := c.DriverService.CreateDriver(input)
		if err != nil {
			if !errors.Is(err, service.ErrDriverPhoneExists) {
				stdLog.Printf("Failed to create driver %s: %v", input.Name, err)
				continue
			}
			existing, lookupErr := c.DriverRepo.GetByPhone(input.Phone)
			if lookupErr != nil || existing == nil {
				stdLog.Printf("Failed to load driver %s: %v", input.Phone, lookupErr)
				continue
			}
			driver = existing
		} else {
			stdLog.Printf("Created driver: %s", driver.Name)
		}
		driverIDs[i] = driver.ID
	}

	orders := []seedOrder{
		{"TW-SEED-0001", "Hussein Ali", "07801111111", "Baghdad", "Karrada, street 52", "25000", constants.OrderStatusEntered, 1, -1},
		{"TW-SEED-0002", "Sara Ahmed", "07802222222", "Basra", "Al-Ashar", "40000", constants.OrderStatusAssigned, 2, 1},
		{"TW-SEED-0003", "Mustafa Jaber", "07803333333", "Erbil", "100m road", "15500.50", constants.OrderStatusOutForDelivery, 1, 2},
		{"TW-SEED-0004", "Noor Hadi", "07804444444", "Baghdad", "Mansour", "60000", constants.OrderStatusDelivered, 3, 0},
		{"TW-SEED-0005", "Ahmed Fadhil", "07805555555", "Karbala", "Old city", "12000", constants.OrderStatusPartialReturn, 2, 0},
		{"TW-SEED-0006", "Maryam Saad", "07806666666", "Mosul", "Al-Zuhour", "0", constants.OrderStatusFullReturn, 1, 2},
	}
	orderDate := time.Now().AddDate(0, 0, -1)
	for _, o := range orders {
		input := service.OrderInput{
			Barcode:          o.barcode,
			RecipientName:    o.name,
			RecipientPhone1:  o.phone,
			RecipientCity:    o.city,
			RecipientAddress: o.address,
			CODAmount:        o.cod,
			Status:           o.status,
			NumberOfPieces:   o.pieces,
			OrderDescription: "Sample parcel",
			SenderReference:  fmt.Sprintf("REF-%s", o.barcode[len(o.barcode)-4:]),
			OrderDate:        &orderDate,
		}
		if o.driver >= 0 && driverIDs[o.driver] != 0 {
			id := driverIDs[o.driver]
			input.DriverID = &id
		}
		if _, err := c.OrderService.CreateOrder(input, admin.ID); err != nil {
			if errors.Is(err, service.ErrOrderBarcodeExists) {
				stdLog.Printf("Order already exists: %s", o.barcode)
				continue
			}
			stdLog.Printf("Failed to create order %s: %v", o.barcode, err)
			continue
		}
		stdLog.Printf("Created order: %s", o.barcode)
	}

	expiry := time.Now().AddDate(0, 0, 20)
	products := []service.ProductInput{
		{Name: "Packing tape", Quantity: 120, Price: "1500", Unit: constants.ProductUnitPiece, Barcode: "PRD-0001"},
		{Name: "Shipping cartons (large)", Quantity: 4, Price: "9000", Unit: constants.ProductUnitCarton, Barcode: "PRD-0002"},
		{Name: "Dates", Quantity: 30, Price: "6000", Unit: constants.ProductUnitKg, Barcode: "PRD-0003", ExpiryDate: &expiry},
	}
	for _, input := range products {
		if _, err := c.ProductService.CreateProduct(input); err != nil {
			if errors.Is(err, service.ErrProductBarcodeExists) {
				continue
			}
			stdLog.Printf("Failed to create product %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", input.Name)
	}

	stdLog.Printf("Seed completed")
}
