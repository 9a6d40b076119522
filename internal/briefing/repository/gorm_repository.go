package repository

import (
	"errors"
	"time"

	"consultant-backend/internal/briefing/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormBriefingRepository implements BriefingRepository using GORM
type gormBriefingRepository struct {
	db *gorm.DB
}

// NewGormBriefingRepository creates a new GORM-based BriefingRepository
func NewGormBriefingRepository(db *gorm.DB) BriefingRepository {
	return &gormBriefingRepository{db: db}
}

func (r *gormBriefingRepository) Create(briefing *domain.Briefing) error {
	if briefing.ID == "" {
		briefing.ID = uuid.New().String()
	}
	if briefing.CreatedAt.IsZero() {
		briefing.CreatedAt = time.Now()
	}
	return r.db.Create(briefing).Error
}

func (r *gormBriefingRepository) FindByID(id string) (*domain.Briefing, error) {
	var briefing domain.Briefing
	err := r.db.Where("id = ?", id).First(&briefing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &briefing, nil
}

func (r *gormBriefingRepository) FindByUser(userID string, limit, offset int) ([]*domain.Briefing, int64, error) {
	var briefings []*domain.Briefing
	var total int64

	query := r.db.Model(&domain.Briefing{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&briefings).Error
	return briefings, total, err
}

func (r *gormBriefingRepository) Delete(id string) error {
	return r.db.Delete(&domain.Briefing{}, "id = ?", id).Error
}

// ExistsFresh is a time-window check, not a uniqueness constraint. Two
// racing cycles can both see false and both generate.
func (r *gormBriefingRepository) ExistsFresh(userID, clientName string, meetingDate time.Time, window time.Duration) (bool, error) {
	dayStart := time.Date(meetingDate.Year(), meetingDate.Month(), meetingDate.Day(), 0, 0, 0, 0, meetingDate.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.db.Model(&domain.Briefing{}).
		Where("user_id = ? AND LOWER(client_name) = LOWER(?)", userID, clientName).
		Where("meeting_date >= ? AND meeting_date < ?", dayStart, dayEnd).
		Where("created_at > ?", time.Now().Add(-window)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
