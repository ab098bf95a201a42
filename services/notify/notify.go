package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"interviewhub/models"
	"interviewhub/utils"

	"go.uber.org/zap"
)

// Service posts a status notification for a booking attempt. Delivery is
// best-effort: the return value reports whether the message was accepted,
// and no failure ever propagates to the caller.
type Service interface {
	Notify(ctx context.Context, event models.NotificationEvent) bool
}

// SlackNotifier delivers notifications to Slack incoming webhooks. Succeeded
// events go to the bookings channel, failed events to the errors channel.
type SlackNotifier struct {
	BookingsURL string
	ErrorsURL   string
	Client      *http.Client
}

func NewSlackNotifier(bookingsURL, errorsURL string, timeout time.Duration) *SlackNotifier {
	return &SlackNotifier{
		BookingsURL: bookingsURL,
		ErrorsURL:   errorsURL,
		Client:      &http.Client{Timeout: timeout},
	}
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

// Notify selects the destination by event kind and posts the message. An
// unconfigured destination skips delivery and reports false without error.
func (n *SlackNotifier) Notify(ctx context.Context, event models.NotificationEvent) bool {
	logger := utils.GetLogger()

	url := n.ErrorsURL
	if event.Kind == models.BookingSucceeded {
		url = n.BookingsURL
	}
	if url == "" {
		logger.Debug("Notification destination not configured, skipping",
			zap.String("kind", string(event.Kind)))
		return false
	}

	msg := buildMessage(event)
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal notification payload", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Error("Failed to build notification request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		logger.Warn("Notification delivery failed", zap.Error(err),
			zap.String("kind", string(event.Kind)))
		return false
	}
	defer resp.Body.Close()

	// Slack acknowledges webhook posts with a literal "ok" body.
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || string(respBody) != "ok" {
		logger.Warn("Notification rejected by destination",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
			zap.String("kind", string(event.Kind)))
		return false
	}

	return true
}

func buildMessage(event models.NotificationEvent) slackMessage {
	var text string
	switch event.Kind {
	case models.BookingSucceeded:
		text = fmt.Sprintf(
			":calendar: *New interview booked*\n*Applicant:* %s (%s)\n*When:* %s\nCalendar invite emailed to the applicant.",
			event.ApplicantName, event.ApplicantEmail, event.DisplayTime,
		)
	default:
		email := event.ApplicantEmail
		if email == "" {
			email = "unknown applicant"
		}
		text = fmt.Sprintf(
			":x: *Booking failed*\n*Applicant:* %s\n*Error:* %s",
			email, event.ErrorMessage,
		)
	}
	if event.Reference != "" {
		text += fmt.Sprintf("\n*Reference:* %s", event.Reference)
	}

	return slackMessage{
		Text: text,
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: text}},
		},
	}
}
