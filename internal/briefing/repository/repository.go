package repository

import (
	"time"

	"consultant-backend/internal/briefing/domain"
)

// BriefingRepository defines the interface for briefing data access.
// It is the dedup source of truth for the scan scheduler.
type BriefingRepository interface {
	Create(briefing *domain.Briefing) error
	FindByID(id string) (*domain.Briefing, error)
	FindByUser(userID string, limit, offset int) ([]*domain.Briefing, int64, error)
	Delete(id string) error

	// ExistsFresh reports whether a briefing for (user, client, meeting
	// date) was created within the given window. Meeting dates are
	// compared by calendar day.
	ExistsFresh(userID, clientName string, meetingDate time.Time, window time.Duration) (bool, error)
}
