package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"consultant-backend/internal/integration/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const readonlyScope = "https://www.googleapis.com/auth/calendar.readonly"

// Service implements the calendar provider against the Google Calendar
// API. It satisfies integration/usecase.CalendarProvider.
type Service struct {
	config *oauth2.Config
}

// NewService creates a Google Calendar provider
func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{readonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL builds the consent URL. Offline access is required so we
// receive a refresh token.
func (s *Service) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades an authorization code for a credential bundle.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*domain.CalendarCredential, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return s.bundleFromToken(token), nil
}

// Refresh trades the refresh token for a fresh access token. A rejected
// refresh token (revoked consent, invalid_grant) maps to
// domain.ErrAuthExpired.
func (s *Service) Refresh(ctx context.Context, cred *domain.CalendarCredential) (*domain.CalendarCredential, error) {
	if cred.RefreshToken == "" {
		return nil, domain.ErrAuthExpired
	}

	source := s.config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: cred.RefreshToken,
	})
	token, err := source.Token()
	if err != nil {
		if isInvalidGrant(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthExpired, err)
		}
		return nil, fmt.Errorf("unable to refresh token: %w", err)
	}
	return s.bundleFromToken(token), nil
}

// ListEvents returns upcoming events from the primary calendar, expanded
// to single events and ordered by start time, the way the briefing scan
// wants them.
func (s *Service) ListEvents(ctx context.Context, accessToken string, timeMin time.Time, maxResults int64) ([]domain.Meeting, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	srv, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	events, err := srv.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	meetings := make([]domain.Meeting, 0, len(events.Items))
	for _, item := range events.Items {
		start, ok := parseEventTime(item.Start)
		if !ok {
			continue
		}
		end, _ := parseEventTime(item.End)

		meetings = append(meetings, domain.Meeting{
			Summary: item.Summary,
			Start:   start,
			End:     end,
		})
	}
	return meetings, nil
}

func (s *Service) bundleFromToken(token *oauth2.Token) *domain.CalendarCredential {
	return &domain.CalendarCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     google.Endpoint.TokenURL,
		Scopes:       readonlyScope,
		Expiry:       token.Expiry,
	}
}

// parseEventTime handles both timed events (DateTime) and all-day events
// (Date only).
func parseEventTime(t *calendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		return parsed, err == nil
	}
	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func isInvalidGrant(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode == "invalid_grant" {
			return true
		}
		return strings.Contains(string(retrieveErr.Body), "invalid_grant")
	}
	return false
}
