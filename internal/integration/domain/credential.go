package domain

import (
	"errors"
	"time"
)

// ErrAuthExpired means the stored refresh token was rejected by the
// provider; the user must reconnect their calendar before scans can
// include them again.
var ErrAuthExpired = errors.New("calendar authorization expired")

// ErrCalendarUnavailable covers transient provider failures. Callers skip
// the user for the current cycle; nothing is escalated.
var ErrCalendarUnavailable = errors.New("calendar provider unavailable")

// CalendarCredential is the OAuth bundle granting read access to one
// user's external calendar. A row is either fully present or absent;
// it is only ever written by the vault's Store and refresh paths.
type CalendarCredential struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex;not null"`
	AccessToken  string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-"`
	TokenURI     string    `json:"token_uri"`
	Scopes       string    `json:"scopes"`
	Expiry       time.Time `json:"expiry"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expired reports whether the access token is past (or within skew of)
// its expiry.
func (c *CalendarCredential) Expired(skew time.Duration) bool {
	if c.Expiry.IsZero() {
		return true
	}
	return time.Now().After(c.Expiry.Add(-skew))
}
