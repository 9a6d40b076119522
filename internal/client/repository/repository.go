package repository

import (
	"consultant-backend/internal/client/domain"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(client *domain.Client) error
	FindByID(id string) (*domain.Client, error)
	FindByMember(userID string) ([]*domain.Client, error)
	Update(client *domain.Client) error
	Delete(id string) error
}
