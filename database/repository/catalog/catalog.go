package catalogRepo

import "servify/models"

// CategoryRepository defines methods for category data access.
type CategoryRepository interface {
	// GetByID retrieves a category by its unique ID.
	GetByID(id string) (*models.Category, error)
	// GetAll retrieves all categories.
	GetAll() ([]models.Category, error)
	// GetActive retrieves active categories only.
	GetActive() ([]models.Category, error)
	// Create inserts a new category record.
	Create(category *models.Category) error
	// Update modifies an existing category record.
	Update(category *models.Category) error
	// SetActive soft-activates or soft-deactivates a category.
	SetActive(id string, active bool) error
}

// SubcategoryRepository defines methods for subcategory data access.
type SubcategoryRepository interface {
	GetByID(id string) (*models.Subcategory, error)
	// GetActiveByCategory returns active subcategories of one category in
	// store order.
	GetActiveByCategory(categoryID string) ([]models.Subcategory, error)
	GetByCategory(categoryID string) ([]models.Subcategory, error)
	Create(subcategory *models.Subcategory) error
	Update(subcategory *models.Subcategory) error
	SetActive(id string, active bool) error
}
