package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	briefingdomain "consultant-backend/internal/briefing/domain"
	"consultant-backend/internal/notification/repository"
	"consultant-backend/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// BriefingEvent is the payload published when a briefing is generated.
// Downstream consumers (mobile sync, analytics) subscribe to the topic.
type BriefingEvent struct {
	Type        string `json:"type"`
	BriefingID  string `json:"briefing_id"`
	UserID      string `json:"user_id"`
	ClientName  string `json:"client_name"`
	MeetingDate string `json:"meeting_date"`
}

// Service fans out briefing-ready notifications: FCM push to the user's
// devices plus a pub/sub event for other consumers. Every failure here
// is log-only; notification delivery never affects briefing generation.
type Service struct {
	pubsubClient *pubsub.Client
	tokenRepo    repository.DeviceTokenRepository
	fcmClient    *fcm.Client
	topicName    string
}

func NewService(projectID, topicName string, tokenRepo repository.DeviceTokenRepository, fcmClient *fcm.Client, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var pubsubClient *pubsub.Client
	if projectID != "" {
		client, err := pubsub.NewClient(ctx, projectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create pubsub client: %v", err)
		}
		pubsubClient = client
	}

	return &Service{
		pubsubClient: pubsubClient,
		tokenRepo:    tokenRepo,
		fcmClient:    fcmClient,
		topicName:    topicName,
	}, nil
}

// BriefingReady notifies the briefing owner that a new briefing exists
func (s *Service) BriefingReady(ctx context.Context, briefing *briefingdomain.Briefing) {
	s.publishEvent(ctx, briefing)
	s.pushToDevices(ctx, briefing)
}

func (s *Service) publishEvent(ctx context.Context, briefing *briefingdomain.Briefing) {
	if s.pubsubClient == nil {
		return
	}

	event := BriefingEvent{
		Type:        "briefing.generated",
		BriefingID:  briefing.ID,
		UserID:      briefing.UserID,
		ClientName:  briefing.ClientName,
		MeetingDate: briefing.MeetingDate.Format("2006-01-02"),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[PubSub] Failed to marshal briefing event: %v", err)
		return
	}

	topic := s.pubsubClient.Topic(s.topicName)
	result := topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := result.Get(ctx); err != nil {
		log.Printf("[PubSub] Failed to publish briefing event: %v", err)
		return
	}
	log.Printf("[PubSub] Published briefing.generated for user %s, client %s", briefing.UserID, briefing.ClientName)
}

func (s *Service) pushToDevices(ctx context.Context, briefing *briefingdomain.Briefing) {
	if s.fcmClient == nil || s.tokenRepo == nil {
		return
	}

	tokens, err := s.tokenRepo.GetTokensByUserID(briefing.UserID)
	if err != nil {
		log.Printf("[FCM] Error getting device tokens for user %s: %v", briefing.UserID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	title := fmt.Sprintf("Briefing ready: %s", briefing.ClientName)
	body := briefing.Summary
	if len(body) > 100 {
		body = body[:97] + "..."
	}

	failedTokens, err := s.fcmClient.SendToDevices(ctx, tokenStrings, fcm.NotificationData{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":         "briefing_ready",
			"briefingId":   briefing.ID,
			"clientName":   briefing.ClientName,
			"click_action": fmt.Sprintf("/briefings/%s", briefing.ID),
		},
	})
	if err != nil {
		log.Printf("[FCM] Error sending notifications: %v", err)
		return
	}

	// Cleanup failed tokens
	if len(failedTokens) > 0 {
		log.Printf("[FCM] Cleaning up %d failed tokens", len(failedTokens))
		for _, token := range failedTokens {
			s.tokenRepo.DeleteToken(token)
		}
	}
}

// Close releases the pub/sub client
func (s *Service) Close() error {
	if s.pubsubClient != nil {
		return s.pubsubClient.Close()
	}
	return nil
}
