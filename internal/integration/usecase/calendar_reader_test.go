package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultant-backend/internal/integration/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUpcomingNoCredentialsIsEmpty(t *testing.T) {
	repo := newFakeCredRepo()
	provider := &fakeProvider{}
	reader := NewCalendarReader(NewCredentialVault(repo, provider), provider)

	meetings, err := reader.ListUpcoming(context.Background(), "unconnected", 10)

	require.NoError(t, err, "no calendar connection is a normal state, not an error")
	assert.NotNil(t, meetings)
	assert.Empty(t, meetings)
}

func TestListUpcomingSortsBySoonest(t *testing.T) {
	now := time.Now()
	repo := newFakeCredRepo()
	repo.creds["u1"] = validCred("u1")
	provider := &fakeProvider{meetings: []domain.Meeting{
		{Summary: "later", Start: now.Add(5 * time.Hour)},
		{Summary: "soon", Start: now.Add(time.Hour)},
		{Summary: "middle", Start: now.Add(3 * time.Hour)},
	}}
	reader := NewCalendarReader(NewCredentialVault(repo, provider), provider)

	meetings, err := reader.ListUpcoming(context.Background(), "u1", 10)

	require.NoError(t, err)
	require.Len(t, meetings, 3)
	assert.Equal(t, "soon", meetings[0].Summary)
	assert.Equal(t, "middle", meetings[1].Summary)
	assert.Equal(t, "later", meetings[2].Summary)
}

func TestListUpcomingAuthExpiredPassesThrough(t *testing.T) {
	repo := newFakeCredRepo()
	expired := validCred("u1")
	expired.Expiry = time.Now().Add(-time.Minute)
	repo.creds["u1"] = expired
	provider := &fakeProvider{refreshErr: domain.ErrAuthExpired}
	reader := NewCalendarReader(NewCredentialVault(repo, provider), provider)

	_, err := reader.ListUpcoming(context.Background(), "u1", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.NotErrorIs(t, err, domain.ErrCalendarUnavailable)
}

func TestListUpcomingProviderFailureIsUnavailable(t *testing.T) {
	repo := newFakeCredRepo()
	repo.creds["u1"] = validCred("u1")
	provider := &fakeProvider{listErr: errors.New("503 backend error")}
	reader := NewCalendarReader(NewCredentialVault(repo, provider), provider)

	_, err := reader.ListUpcoming(context.Background(), "u1", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalendarUnavailable)
}

func TestListUpcomingRefreshFailureIsUnavailable(t *testing.T) {
	repo := newFakeCredRepo()
	expired := validCred("u1")
	expired.Expiry = time.Now().Add(-time.Minute)
	repo.creds["u1"] = expired
	provider := &fakeProvider{refreshErr: errors.New("network flake")}
	reader := NewCalendarReader(NewCredentialVault(repo, provider), provider)

	_, err := reader.ListUpcoming(context.Background(), "u1", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalendarUnavailable)
}
