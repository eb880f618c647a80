package repository

import (
	"errors"
	"strings"

	"github.com/tawseel-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository order data access
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByBarcode(barcode string) (*models.Order, error)
	ListByIDs(ids []uint) ([]models.Order, error)
	ListByBarcodes(barcodes []string) ([]models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	Update(order *models.Order) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	CountByBarcode(barcode string) (int64, error)
	CountByDriver(driverID uint) (int64, error)
	CountSheetReferences(orderID uint) (int64, error)
	FindInBatches(filter OrderListFilter, batchSize int, fn func(batch []models.Order) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM implementation
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds a transaction
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts an order without touching associations
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Omit(clause.Associations).Create(order).Error
}

// GetByID loads an order with its driver
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Driver").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByBarcode exact barcode lookup
func (r *GormOrderRepository) GetByBarcode(barcode string) (*models.Order, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, nil
	}
	var order models.Order
	if err := r.db.Preload("Driver").Where("barcode = ?", barcode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByIDs loads orders by id, ordered by id
func (r *GormOrderRepository) ListByIDs(ids []uint) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	var orders []models.Order
	if err := r.db.Where("id IN ?", ids).Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByBarcodes loads orders by barcode
func (r *GormOrderRepository) ListByBarcodes(barcodes []string) ([]models.Order, error) {
	if len(barcodes) == 0 {
		return []models.Order{}, nil
	}
	var orders []models.Order
	if err := r.db.Where("barcode IN ?", barcodes).Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	} else if filter.Unassigned {
		query = query.Where("driver_id IS NULL")
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(recipient_city) = ?", strings.ToLower(city))
	}
	if filter.Barcode != "" {
		query = query.Where("barcode = ?", strings.TrimSpace(filter.Barcode))
	}
	if filter.CreatorID != 0 {
		query = query.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db,
			"barcode", "recipient_name", "recipient_phone1", "recipient_phone2", "sender_reference",
		)
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	return query
}

// List paginated order list
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.applyFilter(r.db.Model(&models.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Driver").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindInBatches streams filtered orders in id order
func (r *GormOrderRepository) FindInBatches(filter OrderListFilter, batchSize int, fn func(batch []models.Order) error) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	var batch []models.Order
	query := r.applyFilter(r.db.Model(&models.Order{}), filter).Order("id asc")
	return query.FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		return fn(batch)
	}).Error
}

// Update saves all columns
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Omit(clause.Associations).Save(order).Error
}

// UpdateFields partial update
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// Delete hard-deletes an order and its history
func (r *GormOrderRepository) Delete(id uint) error {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderStatusLog{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Order{}, id).Error
}

// CountByBarcode barcode uniqueness probe
func (r *GormOrderRepository) CountByBarcode(barcode string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDriver orders assigned to a driver
func (r *GormOrderRepository) CountByDriver(driverID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("driver_id = ?", driverID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSheetReferences delegate sheets containing the order
func (r *GormOrderRepository) CountSheetReferences(orderID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.DelegateSheetItem{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
