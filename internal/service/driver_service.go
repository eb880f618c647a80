package service

import (
	"strings"

	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"

	"gorm.io/datatypes"
)

// DriverService driver management
type DriverService struct {
	driverRepo repository.DriverRepository
	orderRepo  repository.OrderRepository
}

// NewDriverService creates the driver service
func NewDriverService(driverRepo repository.DriverRepository, orderRepo repository.OrderRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo, orderRepo: orderRepo}
}

// DriverInput create/update payload
type DriverInput struct {
	Name          string
	Phone         string
	IDNumber      string
	AssignedAreas []string
}

func cleanAreas(areas []string) datatypes.JSONSlice[string] {
	result := make([]string, 0, len(areas))
	seen := make(map[string]struct{}, len(areas))
	for _, area := range areas {
		area = strings.TrimSpace(area)
		if area == "" {
			continue
		}
		if _, ok := seen[area]; ok {
			continue
		}
		seen[area] = struct{}{}
		result = append(result, area)
	}
	return datatypes.JSONSlice[string](result)
}

// CreateDriver stores a driver with a unique phone
func (s *DriverService) CreateDriver(input DriverInput) (*models.Driver, error) {
	name := strings.TrimSpace(input.Name)
	phone := normalizePhone(input.Phone)
	if name == "" {
		return nil, requiredField("name")
	}
	if phone == "" {
		return nil, requiredField("phone")
	}
	existing, err := s.driverRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDriverPhoneExists
	}
	driver := &models.Driver{
		Name:          name,
		Phone:         phone,
		IDNumber:      strings.TrimSpace(input.IDNumber),
		AssignedAreas: cleanAreas(input.AssignedAreas),
	}
	if err := s.driverRepo.Create(driver); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDriverPhoneExists
		}
		return nil, err
	}
	return driver, nil
}

// GetDriver loads a driver by id
func (s *DriverService) GetDriver(id uint) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	return driver, nil
}

// List paginated drivers
func (s *DriverService) List(filter repository.DriverListFilter) ([]models.Driver, int64, error) {
	return s.driverRepo.List(filter)
}

// UpdateDriver replaces driver fields
func (s *DriverService) UpdateDriver(id uint, input DriverInput) (*models.Driver, error) {
	driver, err := s.GetDriver(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	phone := normalizePhone(input.Phone)
	if name == "" {
		return nil, requiredField("name")
	}
	if phone == "" {
		return nil, requiredField("phone")
	}
	if phone != driver.Phone {
		existing, err := s.driverRepo.GetByPhone(phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != driver.ID {
			return nil, ErrDriverPhoneExists
		}
	}
	driver.Name = name
	driver.Phone = phone
	driver.IDNumber = strings.TrimSpace(input.IDNumber)
	driver.AssignedAreas = cleanAreas(input.AssignedAreas)
	if err := s.driverRepo.Update(driver); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDriverPhoneExists
		}
		return nil, err
	}
	return driver, nil
}

// DeleteDriver removes a driver that no order or sheet references
func (s *DriverService) DeleteDriver(id uint) error {
	if _, err := s.GetDriver(id); err != nil {
		return err
	}
	orders, err := s.orderRepo.CountByDriver(id)
	if err != nil {
		return err
	}
	sheets, err := s.driverRepo.CountSheets(id)
	if err != nil {
		return err
	}
	if orders > 0 || sheets > 0 {
		return ErrDriverInUse
	}
	return s.driverRepo.Delete(id)
}
