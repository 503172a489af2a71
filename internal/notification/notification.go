package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/assessmentinc/submission-relay/internal/relay"
)

// WebhookPayload represents the notification payload sent to webhook
type WebhookPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendWebhook sends a notification to the configured webhook URL
func SendWebhook(webhookURL, title, message string) error {
	if webhookURL == "" {
		log.Println("Notification webhook URL not configured, skipping notification")
		return nil
	}

	payload := WebhookPayload{
		Title:   title,
		Message: message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %v", err)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned non-success status: %d", resp.StatusCode)
	}

	log.Printf("Notification sent successfully: %s", title)
	return nil
}

// SendOutcomeNotification posts one operator notification for a handled
// invocation. Delivery failures are logged and never fail the invocation.
func SendOutcomeNotification(webhookURL string, outcome relay.Outcome) {
	title := fmt.Sprintf("Submission Relay %s", outcome.State)

	var emoji string
	switch outcome.State {
	case relay.StateSuccess:
		emoji = "✅"
	case relay.StateFailed:
		emoji = "❌"
	}

	detail := outcome.StoragePath
	if outcome.FailedStep != "" {
		detail = "failed at " + string(outcome.FailedStep)
	}

	message := fmt.Sprintf("📦 %s [%s] %s %s %s",
		outcome.Descriptor.AssignmentID,
		outcome.Descriptor.Status,
		outcome.Descriptor.UserEmail,
		detail,
		emoji,
	)

	// Always log the notification message for inspection
	log.Printf("Notification: %s - %s", title, message)

	if err := SendWebhook(webhookURL, title, message); err != nil {
		log.Printf("Failed to send outcome notification: %v", err)
	}
}
