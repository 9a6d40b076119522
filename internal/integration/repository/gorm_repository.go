package repository

import (
	"errors"
	"time"

	"consultant-backend/internal/integration/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormCredentialRepository implements CredentialRepository using GORM
type gormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GORM-based CredentialRepository
func NewGormCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepository{db: db}
}

// Upsert stores the bundle atomically: INSERT ... ON CONFLICT (user_id) DO UPDATE
func (r *gormCredentialRepository) Upsert(cred *domain.CalendarCredential) error {
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now()
	}
	cred.UpdatedAt = time.Now()

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "token_uri", "scopes", "expiry", "updated_at"}),
	}).Create(cred).Error
}

func (r *gormCredentialRepository) FindByUserID(userID string) (*domain.CalendarCredential, error) {
	var cred domain.CalendarCredential
	err := r.db.Where("user_id = ?", userID).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

func (r *gormCredentialRepository) Delete(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.CalendarCredential{}).Error
}

func (r *gormCredentialRepository) ConnectedUserIDs() ([]string, error) {
	var userIDs []string
	err := r.db.Model(&domain.CalendarCredential{}).Pluck("user_id", &userIDs).Error
	return userIDs, err
}
