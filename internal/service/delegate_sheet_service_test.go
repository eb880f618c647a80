package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
)

func TestCreateSheetTotalsAmounts(t *testing.T) {
	svc := newTestServices(t)
	driver := mustCreateDriver(t, svc, "Omar", "01200000001")
	first := mustCreateOrder(t, svc, "T-1", "100")
	second := mustCreateOrder(t, svc, "T-2", "250.50")

	sheet, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID, OrderIDs: []uint{first.ID, second.ID}}, 5)
	if err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}
	if sheet.TotalAmount.String() != "350.50" {
		t.Fatalf("expected total 350.50, got %s", sheet.TotalAmount.String())
	}
	if sheet.OrderCount != 2 || len(sheet.Items) != 2 {
		t.Fatalf("unexpected order count: %d items=%d", sheet.OrderCount, len(sheet.Items))
	}
	if !regexp.MustCompile(`^[0-9]{2,}[0-9]{8}$`).MatchString(sheet.Barcode) {
		t.Fatalf("unexpected sheet barcode: %s", sheet.Barcode)
	}
	if sheet.Driver == nil || sheet.Driver.ID != driver.ID || sheet.CreatorID != 5 {
		t.Fatalf("unexpected sheet header: %+v", sheet)
	}
}

func TestCreateSheetAssignsEveryOrder(t *testing.T) {
	svc := newTestServices(t)
	driver := mustCreateDriver(t, svc, "Driver D", "01200000002")
	var ids []uint
	for _, barcode := range []string{"A", "B", "C"} {
		ids = append(ids, mustCreateOrder(t, svc, barcode, "10").ID)
	}

	sheet, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID, OrderIDs: ids}, 1)
	if err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}
	if sheet.OrderCount != 3 {
		t.Fatalf("expected order_count 3, got %d", sheet.OrderCount)
	}

	var sheets int64
	svc.db.Model(&models.DelegateSheet{}).Count(&sheets)
	if sheets != 1 {
		t.Fatalf("expected one sheet, got %d", sheets)
	}
	for _, id := range ids {
		order, err := svc.orders.GetOrder(id)
		if err != nil {
			t.Fatalf("get order failed: %v", err)
		}
		if order.DriverID == nil || *order.DriverID != driver.ID {
			t.Fatalf("order %d not assigned to driver", id)
		}
		if order.Status != constants.OrderStatusAssigned {
			t.Fatalf("order %d expected assigned, got %s", id, order.Status)
		}
	}
}

func TestCreateSheetRejectsOtherDriverAndRollsBack(t *testing.T) {
	svc := newTestServices(t)
	owner := mustCreateDriver(t, svc, "Owner", "01200000003")
	other := mustCreateDriver(t, svc, "Other", "01200000004")
	free := mustCreateOrder(t, svc, "R-1", "10")
	taken := mustCreateOrder(t, svc, "R-2", "20")
	if _, err := svc.orders.AssignDriver(taken.ID, &owner.ID, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	_, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: other.ID, OrderIDs: []uint{free.ID, taken.ID}}, 1)
	if !errors.Is(err, ErrOrderDriverConflict) {
		t.Fatalf("expected ErrOrderDriverConflict, got %v", err)
	}

	reloaded, err := svc.orders.GetOrder(free.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if reloaded.DriverID != nil || reloaded.Status != constants.OrderStatusEntered {
		t.Fatalf("free order should be untouched after rollback: %+v", reloaded)
	}
	var sheets int64
	svc.db.Model(&models.DelegateSheet{}).Count(&sheets)
	if sheets != 0 {
		t.Fatalf("no sheet should be stored, got %d", sheets)
	}
}

func TestCreateSheetInputErrors(t *testing.T) {
	svc := newTestServices(t)
	driver := mustCreateDriver(t, svc, "Nour", "01200000005")
	order := mustCreateOrder(t, svc, "E-1", "10")

	if _, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID}, 1); !errors.Is(err, ErrSheetEmpty) {
		t.Fatalf("expected ErrSheetEmpty, got %v", err)
	}
	if _, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID, OrderIDs: []uint{order.ID, order.ID}}, 1); !errors.Is(err, ErrSheetDuplicateOrder) {
		t.Fatalf("expected ErrSheetDuplicateOrder, got %v", err)
	}
	if _, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID, OrderIDs: []uint{order.ID, 404}}, 1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: 404, OrderIDs: []uint{order.ID}}, 1); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestScanForSheet(t *testing.T) {
	svc := newTestServices(t)
	driver := mustCreateDriver(t, svc, "Scan", "01200000006")
	other := mustCreateDriver(t, svc, "Else", "01200000007")
	order := mustCreateOrder(t, svc, "SC-1", "10")

	result, err := svc.sheets.Scan(driver.ID, "SC-1")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.Order.ID != order.ID || result.AlreadyOnSheet {
		t.Fatalf("unexpected scan result: %+v", result)
	}

	if _, err := svc.sheets.CreateSheet(CreateSheetInput{DriverID: driver.ID, OrderIDs: []uint{order.ID}}, 1); err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}
	result, err = svc.sheets.Scan(driver.ID, "SC-1")
	if err != nil || !result.AlreadyOnSheet {
		t.Fatalf("expected already on sheet flag: %+v %v", result, err)
	}
	if _, err := svc.sheets.Scan(other.ID, "SC-1"); !errors.Is(err, ErrOrderDriverConflict) {
		t.Fatalf("expected ErrOrderDriverConflict, got %v", err)
	}
	if _, err := svc.sheets.Scan(driver.ID, "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
