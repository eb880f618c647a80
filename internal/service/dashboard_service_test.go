package service

import (
	"context"
	"testing"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestDashboardStatsCachedUntilInvalidated(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mustCreateOrder(t, svc, "DS-1", "100")

	stats, err := svc.dashboard.GetStats(ctx, false)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.OrdersTotal != 1 || stats.CODTotal != "100.00" || len(stats.Trend) != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	raw := &models.Order{
		Barcode:          "DS-RAW",
		RecipientName:    "Raw",
		RecipientPhone1:  "0100",
		RecipientCity:    "Giza",
		RecipientAddress: "Street",
		CODAmount:        models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Status:           constants.OrderStatusDelivered,
		NumberOfPieces:   1,
		CreatorID:        1,
	}
	if err := svc.db.Create(raw).Error; err != nil {
		t.Fatalf("insert order failed: %v", err)
	}

	cached, err := svc.dashboard.GetStats(ctx, false)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if cached.OrdersTotal != 1 {
		t.Fatalf("expected cached total 1, got %d", cached.OrdersTotal)
	}

	svc.dashboard.Invalidate(ctx)
	fresh, err := svc.dashboard.GetStats(ctx, false)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if fresh.OrdersTotal != 2 || fresh.CODTotal != "150.00" || fresh.CODDelivered != "50.00" {
		t.Fatalf("unexpected fresh stats: %+v", fresh)
	}
	if fresh.OrdersByStatus[constants.OrderStatusDelivered] != 1 {
		t.Fatalf("unexpected status counts: %+v", fresh.OrdersByStatus)
	}
}

func TestDashboardInvalidatedByOrderWrites(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	if _, err := svc.dashboard.GetStats(ctx, false); err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	mustCreateOrder(t, svc, "DS-2", "10")

	stats, err := svc.dashboard.GetStats(ctx, false)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.OrdersTotal != 1 || stats.UnassignedOrders != 1 {
		t.Fatalf("expected order write to refresh stats: %+v", stats)
	}
}

func TestDashboardDriverSummaries(t *testing.T) {
	svc := newTestServices(t)
	driver := mustCreateDriver(t, svc, "Summary", "01200000030")
	order := mustCreateOrder(t, svc, "DS-3", "40")
	if _, err := svc.orders.AssignDriver(order.ID, &driver.ID, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	summaries, err := svc.dashboard.DriverSummaries(context.Background(), true)
	if err != nil {
		t.Fatalf("driver summaries failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].DriverID != driver.ID || summaries[0].OrdersTotal != 1 || summaries[0].CODTotal != "40.00" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}
