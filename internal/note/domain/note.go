package domain

import "time"

// MeetingNote records what happened in one meeting with a client.
// Notes are keyed by (user, client name); the briefing pipeline only
// ever reads them.
type MeetingNote struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	ClientName  string    `json:"client_name" gorm:"index;not null"`
	MeetingDate time.Time `json:"meeting_date"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
