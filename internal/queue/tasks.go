package queue

import (
	"encoding/json"
	"fmt"

	"github.com/tawseel-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusChanged order status or driver changed
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
	// TaskDelegateSheetCreated delegate sheet saved
	TaskDelegateSheetCreated = constants.TaskDelegateSheetCreate
)

// OrderStatusChangedPayload status change task body
type OrderStatusChangedPayload struct {
	OrderID    uint   `json:"order_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	DriverID   *uint  `json:"driver_id,omitempty"`
	ActorID    uint   `json:"actor_id"`
	Source     string `json:"source"`
}

// DelegateSheetCreatedPayload sheet task body
type DelegateSheetCreatedPayload struct {
	SheetID  uint `json:"sheet_id"`
	DriverID uint `json:"driver_id"`
}

// NewOrderStatusChangedTask builds the task
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}

// NewDelegateSheetCreatedTask builds the task
func NewDelegateSheetCreatedTask(payload DelegateSheetCreatedPayload) (*asynq.Task, error) {
	if payload.SheetID == 0 {
		return nil, fmt.Errorf("sheet id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDelegateSheetCreated, body), nil
}
