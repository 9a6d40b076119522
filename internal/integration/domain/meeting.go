package domain

import "time"

// Meeting is a calendar event read from the provider. It lives only for
// the duration of one scan; nothing persists it.
type Meeting struct {
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}
