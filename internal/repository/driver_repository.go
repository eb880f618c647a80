package repository

import (
	"errors"
	"strings"

	"github.com/tawseel-next/internal/models"

	"gorm.io/gorm"
)

// DriverRepository driver data access
type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	GetByPhone(phone string) (*models.Driver, error)
	FindFirstByName(name string) (*models.Driver, error)
	List(filter DriverListFilter) ([]models.Driver, int64, error)
	ListAll() ([]models.Driver, error)
	Update(driver *models.Driver) error
	Delete(id uint) error
	CountSheets(driverID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormDriverRepository
}

// GormDriverRepository GORM implementation
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates the driver repository
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// WithTx binds a transaction
func (r *GormDriverRepository) WithTx(tx *gorm.DB) *GormDriverRepository {
	if tx == nil {
		return r
	}
	return &GormDriverRepository{db: tx}
}

// Create inserts a driver
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID fetches by id
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// GetByPhone exact phone lookup
func (r *GormDriverRepository) GetByPhone(phone string) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Where("phone = ?", strings.TrimSpace(phone)).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// FindFirstByName first driver with an exact name, lowest id wins
func (r *GormDriverRepository) FindFirstByName(name string) (*models.Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var driver models.Driver
	if err := r.db.Where("name = ?", name).Order("id asc").First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// List paginated driver list
func (r *GormDriverRepository) List(filter DriverListFilter) ([]models.Driver, int64, error) {
	query := r.db.Model(&models.Driver{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "name", "phone", "id_number")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	if area := strings.TrimSpace(filter.Area); area != "" {
		query = query.Where(jsonArrayContainsExpr(dbDialectName(r.db), "assigned_areas"), area)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var drivers []models.Driver
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("name asc, id asc").Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// ListAll every driver ordered by id
func (r *GormDriverRepository) ListAll() ([]models.Driver, error) {
	var drivers []models.Driver
	if err := r.db.Order("id asc").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// Update saves a driver
func (r *GormDriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// Delete removes a driver
func (r *GormDriverRepository) Delete(id uint) error {
	return r.db.Delete(&models.Driver{}, id).Error
}

// CountSheets delegate sheets owned by the driver
func (r *GormDriverRepository) CountSheets(driverID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.DelegateSheet{}).Where("driver_id = ?", driverID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
