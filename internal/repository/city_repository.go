package repository

import (
	"errors"
	"strings"

	"github.com/tawseel-next/internal/models"

	"gorm.io/gorm"
)

// CityRepository city data access
type CityRepository interface {
	Create(city *models.City) error
	GetByID(id uint) (*models.City, error)
	GetByName(name string) (*models.City, error)
	List(filter CityListFilter) ([]models.City, int64, error)
	ListAll() ([]models.City, error)
	Update(city *models.City) error
	Delete(id uint) error
	CountOrders(name string) (int64, error)
	WithTx(tx *gorm.DB) *GormCityRepository
}

// GormCityRepository GORM implementation
type GormCityRepository struct {
	db *gorm.DB
}

// NewCityRepository creates the city repository
func NewCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// WithTx binds a transaction
func (r *GormCityRepository) WithTx(tx *gorm.DB) *GormCityRepository {
	if tx == nil {
		return r
	}
	return &GormCityRepository{db: tx}
}

// Create inserts a city
func (r *GormCityRepository) Create(city *models.City) error {
	return r.db.Create(city).Error
}

// GetByID fetches by id
func (r *GormCityRepository) GetByID(id uint) (*models.City, error) {
	var city models.City
	if err := r.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// GetByName case-insensitive name lookup
func (r *GormCityRepository) GetByName(name string) (*models.City, error) {
	key := models.CityNameKey(name)
	if key == "" {
		return nil, nil
	}
	var city models.City
	if err := r.db.Where("name_key = ?", key).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// List paginated city list
func (r *GormCityRepository) List(filter CityListFilter) ([]models.City, int64, error) {
	query := r.db.Model(&models.City{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name_key LIKE ?", "%"+models.CityNameKey(search)+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cities []models.City
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("name asc").Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

// ListAll every city ordered by name
func (r *GormCityRepository) ListAll() ([]models.City, error) {
	var cities []models.City
	if err := r.db.Order("name asc").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Update saves a city
func (r *GormCityRepository) Update(city *models.City) error {
	return r.db.Save(city).Error
}

// Delete removes a city
func (r *GormCityRepository) Delete(id uint) error {
	return r.db.Delete(&models.City{}, id).Error
}

// CountOrders orders whose free-text city matches the name
func (r *GormCityRepository) CountOrders(name string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).
		Where("LOWER(recipient_city) = ?", models.CityNameKey(name)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
