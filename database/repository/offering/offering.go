package offeringRepo

import "servify/models"

// OfferingRepository defines methods for provider-service data access.
type OfferingRepository interface {
	// GetByID retrieves an offering by its unique ID.
	GetByID(id string) (*models.ProviderService, error)
	// GetByProvider returns every offering owned by a provider.
	GetByProvider(providerID string) ([]models.ProviderService, error)
	// GetApprovedBySubcategory returns offerings with status approved and
	// is_active true under one subcategory, in store order.
	GetApprovedBySubcategory(subcategoryID string) ([]models.ProviderService, error)
	// GetByStatus returns offerings in one moderation status, for admin queues.
	GetByStatus(status string) ([]models.ProviderService, error)
	// Create inserts a new offering record.
	Create(offering *models.ProviderService) error
	// Update modifies an existing offering record.
	Update(offering *models.ProviderService) error
	// Delete removes an offering record by its ID.
	Delete(id string) error
}
