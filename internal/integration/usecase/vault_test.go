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

type fakeCredRepo struct {
	creds    map[string]*domain.CalendarCredential
	upserted []*domain.CalendarCredential
	findErr  error
}

func newFakeCredRepo() *fakeCredRepo {
	return &fakeCredRepo{creds: make(map[string]*domain.CalendarCredential)}
}

func (r *fakeCredRepo) Upsert(cred *domain.CalendarCredential) error {
	r.creds[cred.UserID] = cred
	r.upserted = append(r.upserted, cred)
	return nil
}

func (r *fakeCredRepo) FindByUserID(userID string) (*domain.CalendarCredential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.creds[userID], nil
}

func (r *fakeCredRepo) Delete(userID string) error {
	delete(r.creds, userID)
	return nil
}

func (r *fakeCredRepo) ConnectedUserIDs() ([]string, error) {
	ids := make([]string, 0, len(r.creds))
	for id := range r.creds {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeProvider struct {
	refreshed    *domain.CalendarCredential
	refreshErr   error
	refreshCalls int
	meetings     []domain.Meeting
	listErr      error
}

func (p *fakeProvider) AuthCodeURL(state string) string { return "https://auth.example/" + state }

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (*domain.CalendarCredential, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProvider) Refresh(ctx context.Context, cred *domain.CalendarCredential) (*domain.CalendarCredential, error) {
	p.refreshCalls++
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return p.refreshed, nil
}

func (p *fakeProvider) ListEvents(ctx context.Context, accessToken string, timeMin time.Time, maxResults int64) ([]domain.Meeting, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.meetings, nil
}

func validCred(userID string) *domain.CalendarCredential {
	return &domain.CalendarCredential{
		ID:           "cred-1",
		UserID:       userID,
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
}

func TestRefreshIfExpiredPassthroughWhenValid(t *testing.T) {
	repo := newFakeCredRepo()
	provider := &fakeProvider{}
	vault := NewCredentialVault(repo, provider)

	cred := validCred("u1")
	got, err := vault.RefreshIfExpired(context.Background(), cred)

	require.NoError(t, err)
	assert.Same(t, cred, got)
	assert.Equal(t, 0, provider.refreshCalls, "a valid token must not hit the provider")
	assert.Empty(t, repo.upserted)
}

func TestRefreshIfExpiredTreatsSkewAsExpired(t *testing.T) {
	repo := newFakeCredRepo()
	provider := &fakeProvider{refreshed: &domain.CalendarCredential{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		Expiry:       time.Now().Add(time.Hour),
	}}
	vault := NewCredentialVault(repo, provider)

	// Expires in 30s, inside the 60s margin.
	cred := validCred("u1")
	cred.Expiry = time.Now().Add(30 * time.Second)

	got, err := vault.RefreshIfExpired(context.Background(), cred)
	require.NoError(t, err)
	assert.Equal(t, "new-access", got.AccessToken)
	assert.Equal(t, 1, provider.refreshCalls)
}

func TestRefreshIfExpiredPersistsBeforeReturning(t *testing.T) {
	repo := newFakeCredRepo()
	provider := &fakeProvider{refreshed: &domain.CalendarCredential{
		AccessToken: "new-access",
		Expiry:      time.Now().Add(time.Hour),
	}}
	vault := NewCredentialVault(repo, provider)

	cred := validCred("u1")
	cred.Expiry = time.Now().Add(-time.Minute)

	got, err := vault.RefreshIfExpired(context.Background(), cred)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1, "the refreshed bundle must be stored before it is returned")
	assert.Same(t, got, repo.upserted[0])
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "cred-1", got.ID)
}

func TestRefreshIfExpiredKeepsOldRefreshToken(t *testing.T) {
	repo := newFakeCredRepo()
	// Provider rotates the access token but omits the refresh token.
	provider := &fakeProvider{refreshed: &domain.CalendarCredential{
		AccessToken: "new-access",
		Expiry:      time.Now().Add(time.Hour),
	}}
	vault := NewCredentialVault(repo, provider)

	cred := validCred("u1")
	cred.Expiry = time.Now().Add(-time.Minute)

	got, err := vault.RefreshIfExpired(context.Background(), cred)
	require.NoError(t, err)
	assert.Equal(t, "refresh", got.RefreshToken)
}

func TestRefreshIfExpiredPropagatesAuthExpired(t *testing.T) {
	repo := newFakeCredRepo()
	provider := &fakeProvider{refreshErr: domain.ErrAuthExpired}
	vault := NewCredentialVault(repo, provider)

	cred := validCred("u1")
	cred.Expiry = time.Now().Add(-time.Minute)

	_, err := vault.RefreshIfExpired(context.Background(), cred)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Empty(t, repo.upserted, "a failed refresh must not touch the stored bundle")
	assert.Equal(t, 1, provider.refreshCalls, "refresh is attempted at most once")
}

func TestStoreSetsUserID(t *testing.T) {
	repo := newFakeCredRepo()
	vault := NewCredentialVault(repo, &fakeProvider{})

	cred := &domain.CalendarCredential{AccessToken: "a"}
	require.NoError(t, vault.Store("u9", cred))
	assert.Equal(t, "u9", cred.UserID)

	stored, err := vault.Get("u9")
	require.NoError(t, err)
	assert.Same(t, cred, stored)
}

func TestCredentialExpired(t *testing.T) {
	cred := &domain.CalendarCredential{Expiry: time.Now().Add(2 * time.Minute)}
	assert.False(t, cred.Expired(60*time.Second))
	assert.True(t, cred.Expired(3*time.Minute))

	noExpiry := &domain.CalendarCredential{}
	assert.True(t, noExpiry.Expired(60*time.Second), "a zero expiry counts as expired")
}
