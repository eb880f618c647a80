package service

import (
	"context"
	"strings"
	"time"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"

	"gorm.io/gorm"
)

// StatsInvalidator drops cached dashboard figures after a write
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// OrderService order lifecycle
type OrderService struct {
	orderRepo   repository.OrderRepository
	driverRepo  repository.DriverRepository
	logRepo     repository.OrderStatusLogRepository
	queueClient *queue.Client
	barcodes    *BarcodeGenerator
	stats       StatsInvalidator
}

// NewOrderService creates the order service
func NewOrderService(orderRepo repository.OrderRepository, driverRepo repository.DriverRepository, logRepo repository.OrderStatusLogRepository, queueClient *queue.Client, barcodes *BarcodeGenerator, stats StatsInvalidator) *OrderService {
	if barcodes == nil {
		barcodes = NewBarcodeGenerator()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		driverRepo:  driverRepo,
		logRepo:     logRepo,
		queueClient: queueClient,
		barcodes:    barcodes,
		stats:       stats,
	}
}

// OrderInput fields accepted on create and update
type OrderInput struct {
	Barcode             string
	RecipientName       string
	RecipientPhone1     string
	RecipientPhone2     string
	RecipientCity       string
	RecipientAddress    string
	CODAmount           string
	Status              string
	NumberOfPieces      int
	OrderDescription    string
	SpecialInstructions string
	SenderReference     string
	OrderDate           *time.Time
	DriverID            *uint
}

// BulkStatusInput bulk status change by id or barcode
type BulkStatusInput struct {
	OrderIDs []uint
	Barcodes []string
	Status   string
}

// BulkItemResult outcome of one bulk item
type BulkItemResult struct {
	OrderID uint   `json:"order_id,omitempty"`
	Barcode string `json:"barcode,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// orderChange one status and/or driver change applied to an order
type orderChange struct {
	Status    string
	SetDriver bool
	DriverID  *uint
	ActorID   uint
	Source    string
}

// orderFromInput validates required fields and builds an unsaved order. No database access.
func orderFromInput(input OrderInput) (*models.Order, error) {
	required := []struct {
		field string
		value string
	}{
		{"recipient_name", input.RecipientName},
		{"recipient_phone1", input.RecipientPhone1},
		{"recipient_city", input.RecipientCity},
		{"recipient_address", input.RecipientAddress},
		{"cod_amount", input.CODAmount},
		{"status", input.Status},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return nil, requiredField(item.field)
		}
	}
	status, err := NormalizeOrderStatus(input.Status)
	if err != nil {
		return nil, err
	}
	amount, err := ParseCODAmount(input.CODAmount)
	if err != nil {
		return nil, err
	}
	pieces := input.NumberOfPieces
	if pieces <= 0 {
		pieces = 1
	}
	return &models.Order{
		Barcode:             strings.TrimSpace(input.Barcode),
		RecipientName:       strings.TrimSpace(input.RecipientName),
		RecipientPhone1:     normalizePhone(input.RecipientPhone1),
		RecipientPhone2:     normalizePhone(input.RecipientPhone2),
		RecipientCity:       strings.TrimSpace(input.RecipientCity),
		RecipientAddress:    strings.TrimSpace(input.RecipientAddress),
		CODAmount:           models.NewMoneyFromDecimal(amount),
		Status:              status,
		NumberOfPieces:      pieces,
		OrderDescription:    strings.TrimSpace(input.OrderDescription),
		SpecialInstructions: strings.TrimSpace(input.SpecialInstructions),
		SenderReference:     strings.TrimSpace(input.SenderReference),
		OrderDate:           input.OrderDate,
		DriverID:            input.DriverID,
	}, nil
}

// CreateOrder validates and stores a new order for the given creator
func (s *OrderService) CreateOrder(input OrderInput, creatorID uint) (*models.Order, error) {
	if creatorID == 0 {
		return nil, ErrCreatorRequired
	}
	order, err := orderFromInput(input)
	if err != nil {
		return nil, err
	}
	order.CreatorID = creatorID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if order.DriverID != nil {
			driver, err := s.driverRepo.WithTx(tx).GetByID(*order.DriverID)
			if err != nil {
				return err
			}
			if driver == nil {
				return ErrDriverNotFound
			}
		}
		if order.Barcode != "" {
			count, err := orderRepo.CountByBarcode(order.Barcode)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrOrderBarcodeExists
			}
		} else {
			code, err := uniqueBarcode(func(int) string {
				return s.barcodes.OrderBarcode()
			}, func(code string) (bool, error) {
				count, err := orderRepo.CountByBarcode(code)
				return count > 0, err
			})
			if err != nil {
				return err
			}
			order.Barcode = code
		}
		if err := orderRepo.Create(order); err != nil {
			if isUniqueViolation(err) {
				return ErrOrderBarcodeExists
			}
			return err
		}
		return s.logRepo.WithTx(tx).Create(&models.OrderStatusLog{
			OrderID:  order.ID,
			ToStatus: order.Status,
			DriverID: order.DriverID,
			ActorID:  creatorID,
			Source:   constants.OrderLogSourceManual,
		})
	})
	if err != nil {
		return nil, err
	}
	s.invalidateStats()
	return order, nil
}

// GetOrder loads an order by id
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByBarcode exact barcode lookup
func (s *OrderService) GetByBarcode(barcode string) (*models.Order, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, requiredField("barcode")
	}
	order, err := s.orderRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List paginated orders
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		status, err := NormalizeOrderStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = status
	}
	return s.orderRepo.List(filter)
}

// History status and assignment log of one order
func (s *OrderService) History(id uint) ([]models.OrderStatusLog, error) {
	if _, err := s.GetOrder(id); err != nil {
		return nil, err
	}
	return s.logRepo.ListByOrder(id)
}

// UpdateOrder replaces the editable fields of an order. An empty barcode keeps the current one.
func (s *OrderService) UpdateOrder(id uint, input OrderInput, actorID uint) (*models.Order, error) {
	updated, err := orderFromInput(input)
	if err != nil {
		return nil, err
	}

	var (
		order      *models.Order
		fromStatus string
		changed    bool
	)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		current, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrOrderNotFound
		}
		if updated.Barcode != "" && updated.Barcode != current.Barcode {
			count, err := orderRepo.CountByBarcode(updated.Barcode)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrOrderBarcodeExists
			}
			current.Barcode = updated.Barcode
		}
		current.RecipientName = updated.RecipientName
		current.RecipientPhone1 = updated.RecipientPhone1
		current.RecipientPhone2 = updated.RecipientPhone2
		current.RecipientCity = updated.RecipientCity
		current.RecipientAddress = updated.RecipientAddress
		current.CODAmount = updated.CODAmount
		current.NumberOfPieces = updated.NumberOfPieces
		current.OrderDescription = updated.OrderDescription
		current.SpecialInstructions = updated.SpecialInstructions
		current.SenderReference = updated.SenderReference
		current.OrderDate = updated.OrderDate
		if err := orderRepo.Update(current); err != nil {
			if isUniqueViolation(err) {
				return ErrOrderBarcodeExists
			}
			return err
		}

		fromStatus = current.Status
		changed, err = applyOrderChange(tx, s.orderRepo, s.logRepo, current, orderChange{
			Status:  updated.Status,
			ActorID: actorID,
			Source:  constants.OrderLogSourceManual,
		})
		if err != nil {
			return err
		}
		order = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.enqueueStatusChanged(order, fromStatus, actorID, constants.OrderLogSourceManual)
	}
	s.invalidateStats()
	return s.GetOrder(order.ID)
}

// UpdateStatus sets any status from any status
func (s *OrderService) UpdateStatus(id uint, status string, actorID uint) (*models.Order, error) {
	normalized, err := NormalizeOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.changeOrder(id, orderChange{
		Status:  normalized,
		ActorID: actorID,
		Source:  constants.OrderLogSourceManual,
	})
}

// AssignDriver sets or clears the driver; an entered order becomes assigned
func (s *OrderService) AssignDriver(id uint, driverID *uint, actorID uint) (*models.Order, error) {
	if driverID != nil {
		driver, err := s.driverRepo.GetByID(*driverID)
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, ErrDriverNotFound
		}
	}
	return s.changeOrder(id, orderChange{
		SetDriver: true,
		DriverID:  driverID,
		ActorID:   actorID,
		Source:    constants.OrderLogSourceManual,
	})
}

func (s *OrderService) changeOrder(id uint, change orderChange) (*models.Order, error) {
	var (
		order      *models.Order
		fromStatus string
		changed    bool
	)
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		current, err := s.orderRepo.WithTx(tx).GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrOrderNotFound
		}
		fromStatus = current.Status
		changed, err = applyOrderChange(tx, s.orderRepo, s.logRepo, current, change)
		order = current
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.enqueueStatusChanged(order, fromStatus, change.ActorID, change.Source)
		s.invalidateStats()
	}
	return s.GetOrder(order.ID)
}

// BulkUpdateStatus applies one status to many orders, each independently
func (s *OrderService) BulkUpdateStatus(input BulkStatusInput, actorID uint) ([]BulkItemResult, error) {
	status, err := NormalizeOrderStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if len(input.OrderIDs) == 0 && len(input.Barcodes) == 0 {
		return nil, requiredField("order_ids")
	}

	change := orderChange{Status: status, ActorID: actorID, Source: constants.OrderLogSourceBulk}
	results := make([]BulkItemResult, 0, len(input.OrderIDs)+len(input.Barcodes))
	for _, id := range input.OrderIDs {
		result := BulkItemResult{OrderID: id}
		if order, err := s.changeOrder(id, change); err != nil {
			result.Error = bulkErrorMessage(err)
		} else {
			result.Barcode = order.Barcode
			result.Success = true
		}
		results = append(results, result)
	}
	for _, barcode := range input.Barcodes {
		result := BulkItemResult{Barcode: strings.TrimSpace(barcode)}
		order, err := s.orderRepo.GetByBarcode(result.Barcode)
		switch {
		case err != nil:
			result.Error = bulkErrorMessage(err)
		case order == nil:
			result.Error = bulkErrorMessage(ErrOrderNotFound)
		default:
			result.OrderID = order.ID
			if _, err := s.changeOrder(order.ID, change); err != nil {
				result.Error = bulkErrorMessage(err)
			} else {
				result.Success = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// BulkAssign assigns many orders to one driver, each independently
func (s *OrderService) BulkAssign(orderIDs []uint, driverID uint, actorID uint) ([]BulkItemResult, error) {
	if len(orderIDs) == 0 {
		return nil, requiredField("order_ids")
	}
	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}

	change := orderChange{SetDriver: true, DriverID: &driver.ID, ActorID: actorID, Source: constants.OrderLogSourceBulk}
	results := make([]BulkItemResult, 0, len(orderIDs))
	for _, id := range orderIDs {
		result := BulkItemResult{OrderID: id}
		if order, err := s.changeOrder(id, change); err != nil {
			result.Error = bulkErrorMessage(err)
		} else {
			result.Barcode = order.Barcode
			result.Success = true
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteOrder removes an order unless a delegate sheet references it
func (s *OrderService) DeleteOrder(id uint) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		refs, err := orderRepo.CountSheetReferences(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrOrderInUse
		}
		return orderRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	s.invalidateStats()
	return nil
}

// applyOrderChange writes the status/driver change and its history row inside tx.
// It reports false when the order already matched.
func applyOrderChange(tx *gorm.DB, orderRepo repository.OrderRepository, logRepo repository.OrderStatusLogRepository, order *models.Order, change orderChange) (bool, error) {
	updates := map[string]interface{}{}
	toStatus := order.Status
	driverID := order.DriverID

	if change.SetDriver && !sameDriver(order.DriverID, change.DriverID) {
		driverID = change.DriverID
		updates["driver_id"] = change.DriverID
		if change.DriverID != nil && order.Status == constants.OrderStatusEntered && change.Status == "" {
			toStatus = constants.OrderStatusAssigned
		}
	}
	if change.Status != "" {
		toStatus = change.Status
	}
	if toStatus != order.Status {
		updates["status"] = toStatus
	}
	if len(updates) == 0 {
		return false, nil
	}

	if err := orderRepo.WithTx(tx).UpdateFields(order.ID, updates); err != nil {
		return false, err
	}
	if err := logRepo.WithTx(tx).Create(&models.OrderStatusLog{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   toStatus,
		DriverID:   driverID,
		ActorID:    change.ActorID,
		Source:     change.Source,
	}); err != nil {
		return false, err
	}
	order.Status = toStatus
	order.DriverID = driverID
	return true, nil
}

func sameDriver(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *OrderService) enqueueStatusChanged(order *models.Order, fromStatus string, actorID uint, source string) {
	if order == nil {
		return
	}
	err := s.queueClient.EnqueueOrderStatusChanged(queue.OrderStatusChangedPayload{
		OrderID:    order.ID,
		FromStatus: fromStatus,
		ToStatus:   order.Status,
		DriverID:   order.DriverID,
		ActorID:    actorID,
		Source:     source,
	})
	if err != nil {
		logger.Warnw("order_status_enqueue_failed",
			"order_id", order.ID,
			"to_status", order.Status,
			"error", err,
		)
	}
}

func (s *OrderService) invalidateStats() {
	if s.stats != nil {
		s.stats.Invalidate(context.Background())
	}
}

func bulkErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case isKnownServiceError(err):
		return err.Error()
	default:
		logger.Errorw("order_bulk_item_failed", "error", err)
		return "internal error"
	}
}
