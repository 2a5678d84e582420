package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gymdesk/internal/adapters/persistence/models"
)

// NotifyService posts membership lifecycle events to a configured
// webhook (front-desk dashboard, chat integration). Disabled when no URL
// is configured; failures are logged and never block the caller.
type NotifyService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotifyService creates a new notify service
func NewNotifyService(webhookURL string) *NotifyService {
	return &NotifyService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotifyService) IsEnabled() bool {
	return s.enabled
}

type notifyEvent struct {
	Event      string `json:"event"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Message    string `json:"message"`
}

func (s *NotifyService) post(event notifyEvent) {
	if !s.enabled {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Notify marshal error: %v", err)
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️ Notify webhook error: %v", err)
		return
	}
	defer resp.Body.Close()
}

// NotifyMembershipExpired fires when a member transitions into expired
func (s *NotifyService) NotifyMembershipExpired(member *models.Member) {
	s.post(notifyEvent{
		Event:      "membership_expired",
		MemberID:   member.ID,
		MemberName: member.FullName,
		Message:    member.FullName + "'s membership expired, renew within 30 days",
	})
}

// NotifyMemberArchived fires when a member transitions into archived
func (s *NotifyService) NotifyMemberArchived(member *models.Member) {
	s.post(notifyEvent{
		Event:      "member_archived",
		MemberID:   member.ID,
		MemberName: member.FullName,
		Message:    member.FullName + " was archived after 30 days past expiry",
	})
}
