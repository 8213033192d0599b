package offering

import (
	"fmt"
	"time"

	catalogRepo "servify/database/repository/catalog"
	offeringRepo "servify/database/repository/offering"
	"servify/models"
	"servify/services/catalog"

	"github.com/google/uuid"
)

// OfferingService covers the provider-service lifecycle: providers create
// pending offerings and edit them under the subcategory price band; admins
// approve or reject; providers toggle visibility only while approved.
type OfferingService interface {
	Create(providerID string, input CreateInput) (*models.ProviderService, error)
	Update(providerID, offeringID string, input UpdateInput) (*models.ProviderService, error)
	Delete(providerID, offeringID string) error
	GetByProvider(providerID string) ([]models.ProviderService, error)
	SetActive(providerID, offeringID string, active bool) error

	// Moderation.
	PendingQueue() ([]models.ProviderService, error)
	Approve(offeringID, notes string) error
	Reject(offeringID, notes string) error
}

// CreateInput is the provider-supplied offering payload.
type CreateInput struct {
	SubcategoryID      string  `json:"subcategory_id"`
	ServiceName        string  `json:"service_name"`
	Price              float64 `json:"price"`
	Description        string  `json:"description"`
	LicenseNumber      string  `json:"license_number"`
	LicenseDocumentURL string  `json:"license_document_url"`
}

// UpdateInput carries editable fields; nil means unchanged.
type UpdateInput struct {
	ServiceName        *string  `json:"service_name,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	Description        *string  `json:"description,omitempty"`
	LicenseNumber      *string  `json:"license_number,omitempty"`
	LicenseDocumentURL *string  `json:"license_document_url,omitempty"`
}

// DefaultOfferingService is the production implementation.
type DefaultOfferingService struct {
	Offerings     offeringRepo.OfferingRepository
	Subcategories catalogRepo.SubcategoryRepository
}

// Create validates the price against the subcategory band and stores the
// offering as pending.
func (s *DefaultOfferingService) Create(providerID string, input CreateInput) (*models.ProviderService, error) {
	if input.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	subcategory, err := s.Subcategories.GetByID(input.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if !subcategory.IsActive {
		return nil, fmt.Errorf("subcategory %s is not active", subcategory.ID)
	}
	if err := catalog.ValidatePrice(input.Price, *subcategory); err != nil {
		return nil, err
	}

	record := models.ProviderService{
		ID:                 uuid.New().String(),
		ProviderID:         providerID,
		SubcategoryID:      subcategory.ID,
		ServiceName:        input.ServiceName,
		Price:              input.Price,
		Description:        input.Description,
		LicenseNumber:      input.LicenseNumber,
		LicenseDocumentURL: input.LicenseDocumentURL,
		Status:             models.OfferingStatusPending,
		IsActive:           false,
		CreatedAt:          time.Now(),
	}
	if err := s.Offerings.Create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies provider edits. A price change is re-validated against the
// band before anything is written.
func (s *DefaultOfferingService) Update(providerID, offeringID string, input UpdateInput) (*models.ProviderService, error) {
	record, err := s.owned(providerID, offeringID)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price != record.Price {
		subcategory, err := s.Subcategories.GetByID(record.SubcategoryID)
		if err != nil {
			return nil, err
		}
		if err := catalog.ValidatePrice(*input.Price, *subcategory); err != nil {
			return nil, err
		}
		record.Price = *input.Price
	}
	if input.ServiceName != nil {
		if *input.ServiceName == "" {
			return nil, fmt.Errorf("service name is required")
		}
		record.ServiceName = *input.ServiceName
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.LicenseNumber != nil {
		record.LicenseNumber = *input.LicenseNumber
	}
	if input.LicenseDocumentURL != nil {
		record.LicenseDocumentURL = *input.LicenseDocumentURL
	}

	if err := s.Offerings.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *DefaultOfferingService) Delete(providerID, offeringID string) error {
	if _, err := s.owned(providerID, offeringID); err != nil {
		return err
	}
	return s.Offerings.Delete(offeringID)
}

func (s *DefaultOfferingService) GetByProvider(providerID string) ([]models.ProviderService, error) {
	return s.Offerings.GetByProvider(providerID)
}

// SetActive toggles listing visibility. Only approved offerings can be
// toggled.
func (s *DefaultOfferingService) SetActive(providerID, offeringID string, active bool) error {
	record, err := s.owned(providerID, offeringID)
	if err != nil {
		return err
	}
	if record.Status != models.OfferingStatusApproved {
		return fmt.Errorf("only approved offerings can be activated or deactivated")
	}
	record.IsActive = active
	return s.Offerings.Update(record)
}

func (s *DefaultOfferingService) PendingQueue() ([]models.ProviderService, error) {
	return s.Offerings.GetByStatus(models.OfferingStatusPending)
}

// Approve moves a pending offering to approved, records the notes and the
// approval time, and lists it.
func (s *DefaultOfferingService) Approve(offeringID, notes string) error {
	return s.moderate(offeringID, models.OfferingStatusApproved, notes)
}

// Reject moves a pending offering to rejected with the given notes.
func (s *DefaultOfferingService) Reject(offeringID, notes string) error {
	return s.moderate(offeringID, models.OfferingStatusRejected, notes)
}

func (s *DefaultOfferingService) moderate(offeringID, status, notes string) error {
	record, err := s.Offerings.GetByID(offeringID)
	if err != nil {
		return err
	}
	if !record.Approvable() {
		return fmt.Errorf("offering %s has already been moderated (status %s)", offeringID, record.Status)
	}

	record.Status = status
	record.ApprovalNotes = notes
	if status == models.OfferingStatusApproved {
		now := time.Now()
		record.ApprovedAt = &now
		record.IsActive = true
	} else {
		record.IsActive = false
	}
	return s.Offerings.Update(record)
}

func (s *DefaultOfferingService) owned(providerID, offeringID string) (*models.ProviderService, error) {
	record, err := s.Offerings.GetByID(offeringID)
	if err != nil {
		return nil, err
	}
	if record.ProviderID != providerID {
		return nil, fmt.Errorf("offering %s does not belong to provider %s", offeringID, providerID)
	}
	return record, nil
}
