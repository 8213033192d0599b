package catalog

import (
	"fmt"

	catalogRepo "servify/database/repository/catalog"
	offeringRepo "servify/database/repository/offering"
	"servify/models"

	"github.com/google/uuid"
)

// CatalogService exposes the category hierarchy and the admin operations on it.
type CatalogService interface {
	// ActiveCategories lists browsable categories.
	ActiveCategories() ([]models.Category, error)
	// ActiveSubcategories returns the active subcategories of one category,
	// store order. Every call re-reads the store.
	ActiveSubcategories(categoryID string) ([]models.Subcategory, error)
	// ApprovedOfferings returns offerings under one subcategory with
	// status approved and is_active true.
	ApprovedOfferings(subcategoryID string) ([]models.ProviderService, error)

	CreateCategory(category models.Category) (*models.Category, error)
	UpdateCategory(category models.Category) error
	SetCategoryActive(id string, active bool) error

	CreateSubcategory(subcategory models.Subcategory) (*models.Subcategory, error)
	UpdateSubcategory(subcategory models.Subcategory) error
	SetSubcategoryActive(id string, active bool) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Categories    catalogRepo.CategoryRepository
	Subcategories catalogRepo.SubcategoryRepository
	Offerings     offeringRepo.OfferingRepository
}

func (s *DefaultCatalogService) ActiveCategories() ([]models.Category, error) {
	return s.Categories.GetActive()
}

func (s *DefaultCatalogService) ActiveSubcategories(categoryID string) ([]models.Subcategory, error) {
	if _, err := s.Categories.GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.Subcategories.GetActiveByCategory(categoryID)
}

func (s *DefaultCatalogService) ApprovedOfferings(subcategoryID string) ([]models.ProviderService, error) {
	if _, err := s.Subcategories.GetByID(subcategoryID); err != nil {
		return nil, err
	}
	return s.Offerings.GetApprovedBySubcategory(subcategoryID)
}

func (s *DefaultCatalogService) CreateCategory(category models.Category) (*models.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	category.ID = uuid.New().String()
	category.IsActive = true
	if err := s.Categories.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *DefaultCatalogService) UpdateCategory(category models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return s.Categories.Update(&category)
}

func (s *DefaultCatalogService) SetCategoryActive(id string, active bool) error {
	return s.Categories.SetActive(id, active)
}

// CreateSubcategory validates the price band before anything is persisted.
func (s *DefaultCatalogService) CreateSubcategory(subcategory models.Subcategory) (*models.Subcategory, error) {
	if subcategory.Name == "" {
		return nil, fmt.Errorf("subcategory name is required")
	}
	if _, err := s.Categories.GetByID(subcategory.CategoryID); err != nil {
		return nil, err
	}
	if err := ValidatePriceBand(subcategory.MinPrice, subcategory.MaxPrice); err != nil {
		return nil, err
	}
	subcategory.ID = uuid.New().String()
	subcategory.IsActive = true
	if err := s.Subcategories.Create(&subcategory); err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (s *DefaultCatalogService) UpdateSubcategory(subcategory models.Subcategory) error {
	if err := ValidatePriceBand(subcategory.MinPrice, subcategory.MaxPrice); err != nil {
		return err
	}
	return s.Subcategories.Update(&subcategory)
}

func (s *DefaultCatalogService) SetSubcategoryActive(id string, active bool) error {
	return s.Subcategories.SetActive(id, active)
}
