package userRepo

import "servify/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	// UpdateTokenHash stores the hash of the user's current auth token.
	UpdateTokenHash(id, tokenHash string) error
	SetActive(id string, active bool) error
}
