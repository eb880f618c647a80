package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/notify"
	"github.com/tawseel-next/internal/notify/mock_notify"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func setupWorkerTest(t *testing.T) (*gorm.DB, *Consumer, *mock_notify.MockPublisher) {
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

	ctrl := gomock.NewController(t)
	publisher := mock_notify.NewMockPublisher(ctrl)
	consumer := &Consumer{
		OrderRepo: repository.NewOrderRepository(db),
		SheetRepo: repository.NewDelegateSheetRepository(db),
		Publisher: publisher,
		now:       func() time.Time { return fixedNow },
	}
	return db, consumer, publisher
}

func createWorkerOrder(t *testing.T, db *gorm.DB, barcode string, driverID *uint) *models.Order {
	t.Helper()
	order := &models.Order{
		Barcode:          barcode,
		RecipientName:    "Mona",
		RecipientPhone1:  "0100",
		RecipientCity:    "Cairo",
		RecipientAddress: "Street",
		CODAmount:        models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Status:           constants.OrderStatusAssigned,
		NumberOfPieces:   1,
		DriverID:         driverID,
		CreatorID:        1,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestHandleOrderStatusChangedPublishesEvent(t *testing.T) {
	db, consumer, publisher := setupWorkerTest(t)
	order := createWorkerOrder(t, db, "W-1", nil)

	task, err := queue.NewOrderStatusChangedTask(queue.OrderStatusChangedPayload{
		OrderID:    order.ID,
		FromStatus: constants.OrderStatusEntered,
		ToStatus:   constants.OrderStatusAssigned,
		ActorID:    3,
		Source:     constants.OrderLogSourceManual,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	publisher.EXPECT().Publish(gomock.Any(), notify.Event{
		Type:       notify.EventOrderStatusChanged,
		OrderID:    order.ID,
		Barcode:    "W-1",
		FromStatus: constants.OrderStatusEntered,
		ToStatus:   constants.OrderStatusAssigned,
		ActorID:    3,
		Source:     constants.OrderLogSourceManual,
		OccurredAt: fixedNow,
	}).Return(nil)

	if err := consumer.handleOrderStatusChanged(context.Background(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func TestHandleOrderStatusChangedSkipsMissingOrder(t *testing.T) {
	_, consumer, publisher := setupWorkerTest(t)
	task, err := queue.NewOrderStatusChangedTask(queue.OrderStatusChangedPayload{OrderID: 404})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	if err := consumer.handleOrderStatusChanged(context.Background(), task); err != nil {
		t.Fatalf("expected nil for missing order, got %v", err)
	}
}

func TestHandleOrderStatusChangedReturnsPublishError(t *testing.T) {
	db, consumer, publisher := setupWorkerTest(t)
	order := createWorkerOrder(t, db, "W-2", nil)
	task, err := queue.NewOrderStatusChangedTask(queue.OrderStatusChangedPayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	publishErr := errors.New("broker down")
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(publishErr)

	if err := consumer.handleOrderStatusChanged(context.Background(), task); !errors.Is(err, publishErr) {
		t.Fatalf("expected publish error for retry, got %v", err)
	}
}

func TestHandleDelegateSheetCreatedPublishesTotals(t *testing.T) {
	db, consumer, publisher := setupWorkerTest(t)
	driver := &models.Driver{Name: "Omar", Phone: "0120"}
	if err := db.Create(driver).Error; err != nil {
		t.Fatalf("create driver failed: %v", err)
	}
	order := createWorkerOrder(t, db, "W-3", &driver.ID)
	sheet := &models.DelegateSheet{
		Barcode:     "0112345678",
		DriverID:    driver.ID,
		TotalAmount: order.CODAmount,
		OrderCount:  1,
		CreatorID:   2,
		Items: []models.DelegateSheetItem{
			{OrderID: order.ID, Barcode: order.Barcode, CODAmount: order.CODAmount},
		},
	}
	if err := repository.NewDelegateSheetRepository(db).Create(sheet); err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}

	task, err := queue.NewDelegateSheetCreatedTask(queue.DelegateSheetCreatedPayload{SheetID: sheet.ID, DriverID: driver.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event notify.Event) error {
		if event.Type != notify.EventDelegateSheetCreated || event.SheetID != sheet.ID {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.TotalAmount != "25.00" || event.OrderCount != 1 || event.DriverID == nil || *event.DriverID != driver.ID {
			t.Fatalf("unexpected sheet totals: %+v", event)
		}
		return nil
	})

	if err := consumer.handleDelegateSheetCreated(context.Background(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, &Consumer{}); err == nil {
		t.Fatalf("expected error for disabled queue")
	}
}
