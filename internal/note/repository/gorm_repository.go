package repository

import (
	"errors"
	"time"

	"consultant-backend/internal/note/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormNoteRepository implements NoteRepository using GORM
type gormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GORM-based NoteRepository
func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(note *domain.MeetingNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()
	return r.db.Create(note).Error
}

func (r *gormNoteRepository) FindByID(id string) (*domain.MeetingNote, error) {
	var note domain.MeetingNote
	err := r.db.Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *gormNoteRepository) FindByUser(userID string, limit, offset int) ([]*domain.MeetingNote, int64, error) {
	var notes []*domain.MeetingNote
	var total int64

	query := r.db.Model(&domain.MeetingNote{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("meeting_date DESC").Limit(limit).Offset(offset).Find(&notes).Error
	return notes, total, err
}

func (r *gormNoteRepository) FindByUserAndClient(userID, clientName string) ([]*domain.MeetingNote, error) {
	var notes []*domain.MeetingNote
	err := r.db.Where("user_id = ? AND LOWER(client_name) = LOWER(?)", userID, clientName).
		Order("meeting_date ASC").Find(&notes).Error
	return notes, err
}

func (r *gormNoteRepository) Update(note *domain.MeetingNote) error {
	note.UpdatedAt = time.Now()
	return r.db.Save(note).Error
}

func (r *gormNoteRepository) Delete(id string) error {
	return r.db.Delete(&domain.MeetingNote{}, "id = ?", id).Error
}
