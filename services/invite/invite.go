package invite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"interviewhub/models"
	"interviewhub/services/timeconv"
	"interviewhub/utils"

	"go.uber.org/zap"
)

// Interview slots have a fixed length.
const durationMinutes = 30

// Service generates calendar-invite content for a booking.
type Service interface {
	Generate(ctx context.Context, details models.BookingDetails) (string, error)
}

// GenerationError signals a failed invite generation, either a non-success
// response from the remote service or a transport fault.
type GenerationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invite generation failed: %v", e.Err)
	}
	return fmt.Sprintf("invite generation failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// DefaultInviteService calls the external ICS generator with local-zone
// date/time components plus the explicit zone name. Absolute timestamps are
// never sent alongside local components; the zone field alone disambiguates.
type DefaultInviteService struct {
	BaseURL string
	Token   string
	Zone    string
	Client  *http.Client
}

func NewDefaultInviteService(baseURL, token, zone string, timeout time.Duration) *DefaultInviteService {
	return &DefaultInviteService{
		BaseURL: baseURL,
		Token:   token,
		Zone:    zone,
		Client:  &http.Client{Timeout: timeout},
	}
}

// generateRequest is the wire shape expected by the ICS generator.
type generateRequest struct {
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	OrganizerEmail  string   `json:"organizer_email"`
	AttendeesEmails []string `json:"attendees_emails"`
	TimeZone        string   `json:"time_zone"`
	MeetingDate     string   `json:"meeting_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	OrganizerName   string   `json:"organizer_name"`
}

// Generate computes the event window in instant space, projects both
// endpoints into the display zone, and submits one request for ICS content.
func (s *DefaultInviteService) Generate(ctx context.Context, details models.BookingDetails) (string, error) {
	start := details.Start
	end := timeconv.AddMinutes(start, durationMinutes)

	meetingDate, err := timeconv.Format(start, s.Zone, "DD-MM-YYYY")
	if err != nil {
		return "", fmt.Errorf("failed to project meeting date: %w", err)
	}
	startTime, err := timeconv.Format(start, s.Zone, "HH:mm")
	if err != nil {
		return "", fmt.Errorf("failed to project start time: %w", err)
	}
	endTime, err := timeconv.Format(end, s.Zone, "HH:mm")
	if err != nil {
		return "", fmt.Errorf("failed to project end time: %w", err)
	}

	payload := generateRequest{
		Summary:         "Interview with " + details.Name,
		Description:     fmt.Sprintf("Interview booking %s for %s.", details.Reference, details.Email),
		OrganizerEmail:  details.Email,
		AttendeesEmails: []string{details.Email},
		TimeZone:        s.Zone,
		MeetingDate:     meetingDate,
		StartTime:       startTime,
		EndTime:         endTime,
		OrganizerName:   details.Name,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal invite request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build invite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apy-token", s.Token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.GetLogger().Warn("Invite generator returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("reference", details.Reference))
		return "", &GenerationError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return string(respBody), nil
}
