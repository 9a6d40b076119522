package usecase

import (
	"context"
	"fmt"
	"time"

	"consultant-backend/internal/integration/domain"
	"consultant-backend/internal/integration/repository"
)

// Refresh is attempted when the token expires within this margin, so a
// token that dies mid-request is never handed out.
const expirySkew = 60 * time.Second

// CalendarProvider is the external OAuth/events surface the vault and
// reader talk to. pkg/calendar implements it against Google.
type CalendarProvider interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*domain.CalendarCredential, error)

	// Refresh trades the refresh token for a new access token. A revoked
	// or invalid refresh token surfaces as domain.ErrAuthExpired.
	Refresh(ctx context.Context, cred *domain.CalendarCredential) (*domain.CalendarCredential, error)

	ListEvents(ctx context.Context, accessToken string, timeMin time.Time, maxResults int64) ([]domain.Meeting, error)
}

// CredentialVault owns the lifecycle of per-user calendar credentials.
// Nothing else reads or writes the bundle.
type CredentialVault struct {
	credRepo repository.CredentialRepository
	provider CalendarProvider
}

// NewCredentialVault creates a new CredentialVault
func NewCredentialVault(credRepo repository.CredentialRepository, provider CalendarProvider) *CredentialVault {
	return &CredentialVault{
		credRepo: credRepo,
		provider: provider,
	}
}

// Get returns the stored bundle, or (nil, nil) when the user never
// connected a calendar.
func (v *CredentialVault) Get(userID string) (*domain.CalendarCredential, error) {
	return v.credRepo.FindByUserID(userID)
}

// Store upserts the bundle after the initial OAuth code exchange.
func (v *CredentialVault) Store(userID string, cred *domain.CalendarCredential) error {
	cred.UserID = userID
	return v.credRepo.Upsert(cred)
}

// Disconnect removes the bundle entirely.
func (v *CredentialVault) Disconnect(userID string) error {
	return v.credRepo.Delete(userID)
}

// ConnectedUserIDs lists every user the scan scheduler should visit.
func (v *CredentialVault) ConnectedUserIDs() ([]string, error) {
	return v.credRepo.ConnectedUserIDs()
}

// RefreshIfExpired returns a bundle whose access token is valid. When a
// refresh happens, the new bundle is persisted BEFORE it is returned, so
// a caller never holds tokens the store does not. Refresh is attempted
// at most once; a failure propagates instead of retrying against the
// provider.
func (v *CredentialVault) RefreshIfExpired(ctx context.Context, cred *domain.CalendarCredential) (*domain.CalendarCredential, error) {
	if !cred.Expired(expirySkew) {
		return cred, nil
	}

	refreshed, err := v.provider.Refresh(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("refreshing credentials for user %s: %w", cred.UserID, err)
	}

	// Providers may rotate the refresh token; keep the old one when they
	// don't send a replacement.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}
	refreshed.ID = cred.ID
	refreshed.UserID = cred.UserID
	refreshed.CreatedAt = cred.CreatedAt

	if err := v.credRepo.Upsert(refreshed); err != nil {
		return nil, fmt.Errorf("persisting refreshed credentials for user %s: %w", cred.UserID, err)
	}
	return refreshed, nil
}
