package service

import (
	"strings"

	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/repository"
)

// CityService city management; names are unique ignoring case
type CityService struct {
	cityRepo repository.CityRepository
}

// NewCityService creates the city service
func NewCityService(cityRepo repository.CityRepository) *CityService {
	return &CityService{cityRepo: cityRepo}
}

// CreateCity stores a city unless the name already exists in any case
func (s *CityService) CreateCity(name string) (*models.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, requiredField("name")
	}
	existing, err := s.cityRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCityExists
	}
	city := &models.City{Name: name}
	if err := s.cityRepo.Create(city); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCityExists
		}
		return nil, err
	}
	return city, nil
}

// GetCity loads a city by id
func (s *CityService) GetCity(id uint) (*models.City, error) {
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

// List paginated cities
func (s *CityService) List(filter repository.CityListFilter) ([]models.City, int64, error) {
	return s.cityRepo.List(filter)
}

// UpdateCity renames a city
func (s *CityService) UpdateCity(id uint, name string) (*models.City, error) {
	city, err := s.GetCity(id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, requiredField("name")
	}
	existing, err := s.cityRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != city.ID {
		return nil, ErrCityExists
	}
	city.Name = name
	if err := s.cityRepo.Update(city); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCityExists
		}
		return nil, err
	}
	return city, nil
}

// DeleteCity removes a city; orders keep their free-text city
func (s *CityService) DeleteCity(id uint) error {
	if _, err := s.GetCity(id); err != nil {
		return err
	}
	return s.cityRepo.Delete(id)
}
