package repository

import (
	"encoding/json"
	"errors"
	"time"

	"consultant-backend/internal/client/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormClientRepository implements ClientRepository using GORM
type gormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GORM-based ClientRepository
func NewGormClientRepository(db *gorm.DB) ClientRepository {
	return &gormClientRepository{db: db}
}

func (r *gormClientRepository) Create(client *domain.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()
	return r.db.Create(client).Error
}

func (r *gormClientRepository) FindByID(id string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *gormClientRepository) FindByMember(userID string) ([]*domain.Client, error) {
	// Members is stored as a JSON array; @> matches membership without
	// needing the jsonb ? operator (which collides with placeholders)
	member, err := json.Marshal([]string{userID})
	if err != nil {
		return nil, err
	}

	var clients []*domain.Client
	err = r.db.Where("created_by = ? OR members::jsonb @> ?", userID, string(member)).
		Order("created_at DESC").Find(&clients).Error
	return clients, err
}

func (r *gormClientRepository) Update(client *domain.Client) error {
	client.UpdatedAt = time.Now()
	return r.db.Save(client).Error
}

func (r *gormClientRepository) Delete(id string) error {
	return r.db.Delete(&domain.Client{}, "id = ?", id).Error
}
