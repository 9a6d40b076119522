package usecase

import (
	"errors"

	"consultant-backend/internal/client/domain"
	"consultant-backend/internal/client/repository"
)

// ClientUsecase defines the interface for client use cases
type ClientUsecase interface {
	CreateClient(userID, name, description string) (*domain.Client, error)
	GetClient(userID, clientID string) (*domain.Client, error)
	GetUserClients(userID string) ([]*domain.Client, error)
	UpdateClient(userID, clientID, name, description string) (*domain.Client, error)
	DeleteClient(userID, clientID string) error
	AddMember(userID, clientID, memberID string) error
}

type clientUsecase struct {
	clientRepo repository.ClientRepository
}

// NewClientUsecase creates a new instance of clientUsecase
func NewClientUsecase(clientRepo repository.ClientRepository) ClientUsecase {
	return &clientUsecase{clientRepo: clientRepo}
}

func (u *clientUsecase) CreateClient(userID, name, description string) (*domain.Client, error) {
	if name == "" {
		return nil, errors.New("client name is required")
	}

	client := &domain.Client{
		Name:        name,
		Description: description,
		CreatedBy:   userID,
		Members:     []string{userID}, // Creator is automatically a member
	}
	if err := u.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (u *clientUsecase) GetClient(userID, clientID string) (*domain.Client, error) {
	client, err := u.clientRepo.FindByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("client not found")
	}
	if !isMember(client, userID) {
		return nil, errors.New("unauthorized")
	}
	return client, nil
}

func (u *clientUsecase) GetUserClients(userID string) ([]*domain.Client, error) {
	return u.clientRepo.FindByMember(userID)
}

func (u *clientUsecase) UpdateClient(userID, clientID, name, description string) (*domain.Client, error) {
	client, err := u.GetClient(userID, clientID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		client.Name = name
	}
	client.Description = description
	if err := u.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (u *clientUsecase) DeleteClient(userID, clientID string) error {
	client, err := u.GetClient(userID, clientID)
	if err != nil {
		return err
	}
	if client.CreatedBy != userID {
		return errors.New("unauthorized")
	}
	return u.clientRepo.Delete(clientID)
}

func (u *clientUsecase) AddMember(userID, clientID, memberID string) error {
	client, err := u.GetClient(userID, clientID)
	if err != nil {
		return err
	}
	if isMember(client, memberID) {
		return nil
	}
	client.Members = append(client.Members, memberID)
	return u.clientRepo.Update(client)
}

func isMember(client *domain.Client, userID string) bool {
	if client.CreatedBy == userID {
		return true
	}
	for _, m := range client.Members {
		if m == userID {
			return true
		}
	}
	return false
}
