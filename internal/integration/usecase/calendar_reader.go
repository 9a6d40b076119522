package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"consultant-backend/internal/integration/domain"
)

// CalendarReader lists a user's upcoming meetings through the vault.
type CalendarReader struct {
	vault    *CredentialVault
	provider CalendarProvider
}

// NewCalendarReader creates a new CalendarReader
func NewCalendarReader(vault *CredentialVault, provider CalendarProvider) *CalendarReader {
	return &CalendarReader{
		vault:    vault,
		provider: provider,
	}
}

// ListUpcoming returns up to limit meetings starting from now, soonest
// first. A user without credentials gets an empty slice, not an error.
// Auth failures surface as domain.ErrAuthExpired; everything else from
// the provider is wrapped in domain.ErrCalendarUnavailable so callers
// can treat it as "skip this user this cycle".
func (r *CalendarReader) ListUpcoming(ctx context.Context, userID string, limit int) ([]domain.Meeting, error) {
	cred, err := r.vault.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("loading credentials for user %s: %w", userID, err)
	}
	if cred == nil {
		return []domain.Meeting{}, nil
	}

	cred, err = r.vault.RefreshIfExpired(ctx, cred)
	if err != nil {
		if errors.Is(err, domain.ErrAuthExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCalendarUnavailable, err)
	}

	if limit <= 0 {
		limit = 10
	}

	meetings, err := r.provider.ListEvents(ctx, cred.AccessToken, time.Now(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCalendarUnavailable, err)
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].Start.Before(meetings[j].Start)
	})
	return meetings, nil
}
