package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService inventory items
type ProductService struct {
	productRepo repository.ProductRepository
	inventory   config.InventoryConfig
	stats       StatsInvalidator
	now         func() time.Time
}

// NewProductService creates the product service
func NewProductService(productRepo repository.ProductRepository, inventory config.InventoryConfig, stats StatsInvalidator) *ProductService {
	return &ProductService{productRepo: productRepo, inventory: inventory, stats: stats, now: time.Now}
}

// ProductInput create/update payload
type ProductInput struct {
	Name       string
	Quantity   int
	Price      string
	Unit       string
	Barcode    string
	ExpiryDate *time.Time
}

// ProductListInput list query; LowStock uses the configured threshold
type ProductListInput struct {
	Page               int
	PageSize           int
	Search             string
	Unit               string
	LowStock           bool
	ExpiringWithinDays int
}

func normalizeProductUnit(raw string) (string, error) {
	unit := strings.ToLower(strings.TrimSpace(raw))
	switch unit {
	case constants.ProductUnitPiece, constants.ProductUnitKg, constants.ProductUnitCarton:
		return unit, nil
	case "":
		return constants.ProductUnitPiece, nil
	default:
		return "", ErrInvalidProductUnit
	}
}

func (s *ProductService) buildProduct(product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return requiredField("name")
	}
	if input.Quantity < 0 {
		return invalidField("quantity", "must not be negative")
	}
	unit, err := normalizeProductUnit(input.Unit)
	if err != nil {
		return err
	}
	price := decimal.Zero
	if raw := strings.TrimSpace(input.Price); raw != "" {
		price, err = decimal.NewFromString(raw)
		if err != nil {
			return invalidField("price", "must be a number")
		}
		if price.IsNegative() {
			return invalidField("price", "must not be negative")
		}
	}
	product.Name = name
	product.Quantity = input.Quantity
	product.Price = models.NewMoneyFromDecimal(price)
	product.Unit = unit
	product.ExpiryDate = input.ExpiryDate
	product.Barcode = nil
	if barcode := strings.TrimSpace(input.Barcode); barcode != "" {
		product.Barcode = &barcode
	}
	return nil
}

func (s *ProductService) ensureBarcodeFree(barcode *string, selfID uint) error {
	if barcode == nil {
		return nil
	}
	existing, err := s.productRepo.GetByBarcode(*barcode)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrProductBarcodeExists
	}
	return nil
}

// CreateProduct stores a new product
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.buildProduct(product, input); err != nil {
		return nil, err
	}
	if err := s.ensureBarcodeFree(product.Barcode, 0); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrProductBarcodeExists
		}
		return nil, err
	}
	s.invalidateStats()
	return product, nil
}

// GetProduct loads a product by id
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List paginated products with stock alerts filters
func (s *ProductService) List(input ProductListInput) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}
	if input.Unit != "" {
		unit, err := normalizeProductUnit(input.Unit)
		if err != nil {
			return nil, 0, err
		}
		filter.Unit = unit
	}
	if input.LowStock {
		threshold := s.inventory.LowStockThreshold
		filter.LowStockThreshold = &threshold
	}
	if input.ExpiringWithinDays > 0 {
		before := s.now().AddDate(0, 0, input.ExpiringWithinDays)
		filter.ExpiringBefore = &before
	}
	return s.productRepo.List(filter)
}

// UpdateProduct replaces product fields
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.buildProduct(product, input); err != nil {
		return nil, err
	}
	if err := s.ensureBarcodeFree(product.Barcode, product.ID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrProductBarcodeExists
		}
		return nil, err
	}
	s.invalidateStats()
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateStats()
	return nil
}

// AdjustStock adds delta to the quantity; the result never drops below zero
func (s *ProductService) AdjustStock(id uint, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, invalidField("delta", "must not be zero")
	}
	product, err := s.productRepo.AdjustQuantity(id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	s.invalidateStats()
	return product, nil
}

func (s *ProductService) invalidateStats() {
	if s.stats != nil {
		s.stats.Invalidate(context.Background())
	}
}
