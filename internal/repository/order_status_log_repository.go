package repository

import (
	"github.com/tawseel-next/internal/models"

	"gorm.io/gorm"
)

// OrderStatusLogRepository order history data access
type OrderStatusLogRepository interface {
	Create(log *models.OrderStatusLog) error
	CreateBatch(logs []models.OrderStatusLog) error
	ListByOrder(orderID uint) ([]models.OrderStatusLog, error)
	WithTx(tx *gorm.DB) *GormOrderStatusLogRepository
}

// GormOrderStatusLogRepository GORM implementation
type GormOrderStatusLogRepository struct {
	db *gorm.DB
}

// NewOrderStatusLogRepository creates the status log repository
func NewOrderStatusLogRepository(db *gorm.DB) *GormOrderStatusLogRepository {
	return &GormOrderStatusLogRepository{db: db}
}

// WithTx binds a transaction
func (r *GormOrderStatusLogRepository) WithTx(tx *gorm.DB) *GormOrderStatusLogRepository {
	if tx == nil {
		return r
	}
	return &GormOrderStatusLogRepository{db: tx}
}

// Create appends one entry
func (r *GormOrderStatusLogRepository) Create(log *models.OrderStatusLog) error {
	return r.db.Create(log).Error
}

// CreateBatch appends several entries
func (r *GormOrderStatusLogRepository) CreateBatch(logs []models.OrderStatusLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.Create(&logs).Error
}

// ListByOrder history of one order, oldest first
func (r *GormOrderStatusLogRepository) ListByOrder(orderID uint) ([]models.OrderStatusLog, error) {
	var logs []models.OrderStatusLog
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
