package domain

import "time"

// Client represents a consulting client tracked by one or more users
type Client struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"index;not null"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by" gorm:"index;not null"`
	Members     []string  `json:"members" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
