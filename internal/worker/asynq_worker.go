package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/notify"
	"github.com/tawseel-next/internal/provider"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"

	"github.com/hibiken/asynq"
)

// Consumer handles queued order and sheet events
type Consumer struct {
	OrderRepo repository.OrderRepository
	SheetRepo repository.DelegateSheetRepository
	Publisher notify.Publisher
	now       func() time.Time
}

// NewConsumer builds a consumer from the container
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return nil
	}
	return &Consumer{
		OrderRepo: c.OrderRepo,
		SheetRepo: c.DelegateSheetRepo,
		Publisher: c.Publisher,
		now:       time.Now,
	}
}

// Register binds task handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
	mux.HandleFunc(queue.TaskDelegateSheetCreated, c.handleDelegateSheetCreated)
}

func (c *Consumer) timestamp() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *Consumer) handleOrderStatusChanged(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		// deleted before the task ran
		logger.Debugw("worker_order_status_skip_not_found", "order_id", payload.OrderID)
		return nil
	}

	event := notify.Event{
		Type:       notify.EventOrderStatusChanged,
		OrderID:    order.ID,
		Barcode:    order.Barcode,
		FromStatus: payload.FromStatus,
		ToStatus:   payload.ToStatus,
		DriverID:   order.DriverID,
		ActorID:    payload.ActorID,
		Source:     payload.Source,
		OccurredAt: c.timestamp(),
	}
	if err := c.Publisher.Publish(ctx, event); err != nil {
		logger.Warnw("worker_order_status_publish_failed", "order_id", order.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleDelegateSheetCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.DelegateSheetCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_delegate_sheet_unmarshal_failed", "error", err)
		return err
	}
	if payload.SheetID == 0 {
		return nil
	}
	sheet, err := c.SheetRepo.GetByID(payload.SheetID)
	if err != nil {
		logger.Warnw("worker_delegate_sheet_fetch_failed", "sheet_id", payload.SheetID, "error", err)
		return err
	}
	if sheet == nil {
		logger.Debugw("worker_delegate_sheet_skip_not_found", "sheet_id", payload.SheetID)
		return nil
	}

	driverID := sheet.DriverID
	event := notify.Event{
		Type:        notify.EventDelegateSheetCreated,
		SheetID:     sheet.ID,
		Barcode:     sheet.Barcode,
		DriverID:    &driverID,
		TotalAmount: sheet.TotalAmount.String(),
		OrderCount:  sheet.OrderCount,
		ActorID:     sheet.CreatorID,
		OccurredAt:  c.timestamp(),
	}
	if err := c.Publisher.Publish(ctx, event); err != nil {
		logger.Warnw("worker_delegate_sheet_publish_failed", "sheet_id", sheet.ID, "error", err)
		return err
	}
	return nil
}
