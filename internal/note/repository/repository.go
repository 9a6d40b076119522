package repository

import (
	"consultant-backend/internal/note/domain"
)

// NoteRepository defines the interface for meeting note data access
type NoteRepository interface {
	Create(note *domain.MeetingNote) error
	FindByID(id string) (*domain.MeetingNote, error)
	FindByUser(userID string, limit, offset int) ([]*domain.MeetingNote, int64, error)

	// FindByUserAndClient returns notes for a (user, client) pairing in
	// chronological order, oldest first
	FindByUserAndClient(userID, clientName string) ([]*domain.MeetingNote, error)

	Update(note *domain.MeetingNote) error
	Delete(id string) error
}
