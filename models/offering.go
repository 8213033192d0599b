package models

import "time"

// Offering status lifecycle: created by a provider as pending, moved to
// approved or rejected by an admin. Providers may toggle IsActive only
// while the offering is approved.
const (
	OfferingStatusPending  = "pending"
	OfferingStatusApproved = "approved"
	OfferingStatusRejected = "rejected"
)

// ProviderService is a provider's priced offering of one subcategory.
type ProviderService struct {
	ID                 string     `bson:"id" json:"id"`
	ProviderID         string     `bson:"provider_id" json:"provider_id"`
	SubcategoryID      string     `bson:"subcategory_id" json:"subcategory_id"`
	ServiceName        string     `bson:"service_name" json:"service_name"`
	Price              float64    `bson:"price" json:"price"`
	Description        string     `bson:"description,omitempty" json:"description,omitempty"`
	LicenseNumber      string     `bson:"license_number,omitempty" json:"license_number,omitempty"`
	LicenseDocumentURL string     `bson:"license_document_url,omitempty" json:"license_document_url,omitempty"`
	Status             string     `bson:"status" json:"status"`
	IsActive           bool       `bson:"is_active" json:"is_active"`
	ApprovalNotes      string     `bson:"approval_notes,omitempty" json:"approval_notes,omitempty"`
	ApprovedAt         *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
}

// Approvable reports whether the offering can still be moderated.
func (ps *ProviderService) Approvable() bool {
	return ps.Status == OfferingStatusPending
}
