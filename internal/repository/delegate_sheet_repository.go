package repository

import (
	"errors"
	"strings"

	"github.com/tawseel-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DelegateSheetRepository settlement sheet data access
type DelegateSheetRepository interface {
	Create(sheet *models.DelegateSheet) error
	GetByID(id uint) (*models.DelegateSheet, error)
	GetByBarcode(barcode string) (*models.DelegateSheet, error)
	List(filter DelegateSheetListFilter) ([]models.DelegateSheet, int64, error)
	CountByBarcode(barcode string) (int64, error)
	ListOrderIDsOnSheets(orderIDs []uint) ([]uint, error)
	WithTx(tx *gorm.DB) *GormDelegateSheetRepository
}

// GormDelegateSheetRepository GORM implementation
type GormDelegateSheetRepository struct {
	db *gorm.DB
}

// NewDelegateSheetRepository creates the delegate sheet repository
func NewDelegateSheetRepository(db *gorm.DB) *GormDelegateSheetRepository {
	return &GormDelegateSheetRepository{db: db}
}

// WithTx binds a transaction
func (r *GormDelegateSheetRepository) WithTx(tx *gorm.DB) *GormDelegateSheetRepository {
	if tx == nil {
		return r
	}
	return &GormDelegateSheetRepository{db: tx}
}

// Create inserts the sheet header and its items
func (r *GormDelegateSheetRepository) Create(sheet *models.DelegateSheet) error {
	items := sheet.Items
	sheet.Items = nil
	if err := r.db.Omit(clause.Associations).Create(sheet).Error; err != nil {
		sheet.Items = items
		return err
	}
	for i := range items {
		items[i].DelegateSheetID = sheet.ID
	}
	if len(items) > 0 {
		if err := r.db.Omit(clause.Associations).Create(&items).Error; err != nil {
			sheet.Items = items
			return err
		}
	}
	sheet.Items = items
	return nil
}

// GetByID loads a sheet with driver and member orders
func (r *GormDelegateSheetRepository) GetByID(id uint) (*models.DelegateSheet, error) {
	var sheet models.DelegateSheet
	if err := r.detailQuery().First(&sheet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sheet, nil
}

// GetByBarcode loads a sheet by barcode
func (r *GormDelegateSheetRepository) GetByBarcode(barcode string) (*models.DelegateSheet, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, nil
	}
	var sheet models.DelegateSheet
	if err := r.detailQuery().Where("barcode = ?", barcode).First(&sheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *GormDelegateSheetRepository) detailQuery() *gorm.DB {
	return r.db.Preload("Driver").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Order")
}

// List paginated sheet list
func (r *GormDelegateSheetRepository) List(filter DelegateSheetListFilter) ([]models.DelegateSheet, int64, error) {
	query := r.db.Model(&models.DelegateSheet{})
	if filter.DriverID != 0 {
		query = query.Where("driver_id = ?", filter.DriverID)
	}
	if barcode := strings.TrimSpace(filter.Barcode); barcode != "" {
		query = query.Where("barcode = ?", barcode)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var sheets []models.DelegateSheet
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("Driver").Order("id desc").Find(&sheets).Error; err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

// CountByBarcode barcode uniqueness probe
func (r *GormDelegateSheetRepository) CountByBarcode(barcode string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.DelegateSheet{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListOrderIDsOnSheets returns which of the given orders already sit on a sheet
func (r *GormDelegateSheetRepository) ListOrderIDsOnSheets(orderIDs []uint) ([]uint, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := r.db.Model(&models.DelegateSheetItem{}).
		Where("order_id IN ?", orderIDs).
		Distinct("order_id").
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
