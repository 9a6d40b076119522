package repository

import (
	"consultant-backend/internal/integration/domain"
)

// CredentialRepository defines the interface for calendar credential storage
type CredentialRepository interface {
	// Upsert stores the bundle for a user, replacing any existing one
	Upsert(cred *domain.CalendarCredential) error

	// FindByUserID returns (nil, nil) when the user has no bundle
	FindByUserID(userID string) (*domain.CalendarCredential, error)

	Delete(userID string) error

	// ConnectedUserIDs lists every user with a stored bundle
	ConnectedUserIDs() ([]string, error)
}
