package service

import (
	"context"
	"fmt"

	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"

	"gorm.io/gorm"
)

// DelegateSheetService driver settlement sheets
type DelegateSheetService struct {
	sheetRepo   repository.DelegateSheetRepository
	orderRepo   repository.OrderRepository
	driverRepo  repository.DriverRepository
	logRepo     repository.OrderStatusLogRepository
	queueClient *queue.Client
	barcodes    *BarcodeGenerator
	stats       StatsInvalidator
}

// NewDelegateSheetService creates the delegate sheet service
func NewDelegateSheetService(sheetRepo repository.DelegateSheetRepository, orderRepo repository.OrderRepository, driverRepo repository.DriverRepository, logRepo repository.OrderStatusLogRepository, queueClient *queue.Client, barcodes *BarcodeGenerator, stats StatsInvalidator) *DelegateSheetService {
	if barcodes == nil {
		barcodes = NewBarcodeGenerator()
	}
	return &DelegateSheetService{
		sheetRepo:   sheetRepo,
		orderRepo:   orderRepo,
		driverRepo:  driverRepo,
		logRepo:     logRepo,
		queueClient: queueClient,
		barcodes:    barcodes,
		stats:       stats,
	}
}

// CreateSheetInput orders collected for one driver
type CreateSheetInput struct {
	DriverID uint
	OrderIDs []uint
}

// SheetScanResult order found while building a sheet
type SheetScanResult struct {
	Order          *models.Order `json:"order"`
	AlreadyOnSheet bool          `json:"already_on_sheet"`
}

type assignedOrder struct {
	order      models.Order
	fromStatus string
}

// CreateSheet assigns the orders to the driver and saves the sheet in one transaction
func (s *DelegateSheetService) CreateSheet(input CreateSheetInput, creatorID uint) (*models.DelegateSheet, error) {
	if creatorID == 0 {
		return nil, ErrCreatorRequired
	}
	if input.DriverID == 0 {
		return nil, requiredField("driver_id")
	}
	if len(input.OrderIDs) == 0 {
		return nil, ErrSheetEmpty
	}
	seen := make(map[uint]struct{}, len(input.OrderIDs))
	for _, id := range input.OrderIDs {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %d", ErrSheetDuplicateOrder, id)
		}
		seen[id] = struct{}{}
	}

	var (
		sheet   *models.DelegateSheet
		changed []assignedOrder
	)
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		driver, err := s.driverRepo.WithTx(tx).GetByID(input.DriverID)
		if err != nil {
			return err
		}
		if driver == nil {
			return ErrDriverNotFound
		}

		orders, err := s.orderRepo.WithTx(tx).ListByIDs(input.OrderIDs)
		if err != nil {
			return err
		}
		if len(orders) != len(input.OrderIDs) {
			return ErrOrderNotFound
		}
		byID := make(map[uint]models.Order, len(orders))
		for _, order := range orders {
			if order.DriverID != nil && *order.DriverID != driver.ID {
				return fmt.Errorf("%w: %s", ErrOrderDriverConflict, order.Barcode)
			}
			byID[order.ID] = order
		}

		items := make([]models.DelegateSheetItem, 0, len(input.OrderIDs))
		amounts := make([]models.Money, 0, len(input.OrderIDs))
		for _, id := range input.OrderIDs {
			order := byID[id]
			from := order.Status
			ok, err := applyOrderChange(tx, s.orderRepo, s.logRepo, &order, orderChange{
				SetDriver: true,
				DriverID:  &driver.ID,
				ActorID:   creatorID,
				Source:    constants.OrderLogSourceDelegateSheet,
			})
			if err != nil {
				return err
			}
			if ok {
				changed = append(changed, assignedOrder{order: order, fromStatus: from})
			}
			items = append(items, models.DelegateSheetItem{
				OrderID:   order.ID,
				Barcode:   order.Barcode,
				CODAmount: order.CODAmount,
			})
			amounts = append(amounts, order.CODAmount)
		}

		sheetRepo := s.sheetRepo.WithTx(tx)
		code, err := uniqueBarcode(func(attempt int) string {
			return s.barcodes.SheetBarcode(driver.ID, attempt)
		}, func(code string) (bool, error) {
			count, err := sheetRepo.CountByBarcode(code)
			return count > 0, err
		})
		if err != nil {
			return err
		}

		sheet = &models.DelegateSheet{
			Barcode:     code,
			DriverID:    driver.ID,
			TotalAmount: models.SumMoney(amounts...),
			OrderCount:  len(items),
			CreatorID:   creatorID,
			Items:       items,
		}
		return sheetRepo.Create(sheet)
	})
	if err != nil {
		return nil, err
	}

	for _, item := range changed {
		err := s.queueClient.EnqueueOrderStatusChanged(queue.OrderStatusChangedPayload{
			OrderID:    item.order.ID,
			FromStatus: item.fromStatus,
			ToStatus:   item.order.Status,
			DriverID:   item.order.DriverID,
			ActorID:    creatorID,
			Source:     constants.OrderLogSourceDelegateSheet,
		})
		if err != nil {
			logger.Warnw("order_status_enqueue_failed", "order_id", item.order.ID, "error", err)
		}
	}
	if err := s.queueClient.EnqueueDelegateSheetCreated(queue.DelegateSheetCreatedPayload{
		SheetID:  sheet.ID,
		DriverID: sheet.DriverID,
	}); err != nil {
		logger.Warnw("delegate_sheet_enqueue_failed", "sheet_id", sheet.ID, "error", err)
	}
	if s.stats != nil {
		s.stats.Invalidate(context.Background())
	}
	return s.Get(sheet.ID)
}

// Scan resolves a scanned barcode for a driver's sheet and rejects orders held by another driver
func (s *DelegateSheetService) Scan(driverID uint, barcode string) (*SheetScanResult, error) {
	if driverID == 0 {
		return nil, requiredField("driver_id")
	}
	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	order, err := s.orderRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DriverID != nil && *order.DriverID != driverID {
		return nil, ErrOrderDriverConflict
	}
	ids, err := s.sheetRepo.ListOrderIDsOnSheets([]uint{order.ID})
	if err != nil {
		return nil, err
	}
	return &SheetScanResult{Order: order, AlreadyOnSheet: len(ids) > 0}, nil
}

// Get sheet with driver and items
func (s *DelegateSheetService) Get(id uint) (*models.DelegateSheet, error) {
	sheet, err := s.sheetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, ErrDelegateSheetNotFound
	}
	return sheet, nil
}

// GetByBarcode sheet lookup by its barcode
func (s *DelegateSheetService) GetByBarcode(barcode string) (*models.DelegateSheet, error) {
	sheet, err := s.sheetRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, ErrDelegateSheetNotFound
	}
	return sheet, nil
}

// List paginated sheets
func (s *DelegateSheetService) List(filter repository.DelegateSheetListFilter) ([]models.DelegateSheet, int64, error) {
	return s.sheetRepo.List(filter)
}
