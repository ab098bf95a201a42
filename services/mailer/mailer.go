package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"interviewhub/models"
	"interviewhub/services/timeconv"
	"interviewhub/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendEndpoint = "/v3/mail/send"
	// How the interview time is shown to the applicant, e.g. "21-05-2025 02:30 PM PDT".
	displayPattern = "DD-MM-YYYY hh:mm A z"
)

// Service sends the confirmation email with the calendar invite attached.
type Service interface {
	SendConfirmation(ctx context.Context, details models.BookingDetails, inviteContent string) error
}

// SendError signals a non-success response from the mail transport. The
// caller must not assume partial delivery occurred.
type SendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("email send failed: %v", e.Err)
	}
	return fmt.Sprintf("email send failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SendGridMailer delivers confirmations through the SendGrid v3 API. The API
// key is held on the instance and threaded into each request; no package or
// process-wide client state is mutated.
type SendGridMailer struct {
	APIKey    string
	Host      string
	FromEmail string
	FromName  string
	CCEmail   string
	Zone      string
	client    *rest.Client
}

func NewSendGridMailer(apiKey, fromEmail, fromName, ccEmail, zone string, timeout time.Duration) *SendGridMailer {
	return &SendGridMailer{
		APIKey:    apiKey,
		Host:      "https://api.sendgrid.com",
		FromEmail: fromEmail,
		FromName:  fromName,
		CCEmail:   ccEmail,
		Zone:      zone,
		client:    &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

// SendConfirmation composes plain and HTML bodies showing the same local
// display time, attaches the invite as a scheduling request, and sends to
// the applicant with a fixed copy recipient.
func (m *SendGridMailer) SendConfirmation(ctx context.Context, details models.BookingDetails, inviteContent string) error {
	displayTime, err := timeconv.Format(details.Start, m.Zone, displayPattern)
	if err != nil {
		return fmt.Errorf("failed to format interview time: %w", err)
	}

	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(details.Name, details.Email)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = fmt.Sprintf("Interview confirmed for %s", displayTime)

	p := mail.NewPersonalization()
	p.AddTos(to)
	if m.CCEmail != "" {
		p.AddCCs(mail.NewEmail("", m.CCEmail))
	}
	message.AddPersonalizations(p)

	plain := fmt.Sprintf(
		"Hi %s,\n\nYour interview is confirmed for %s.\nA calendar invite is attached.\n\nBooking reference: %s\n",
		details.Name, displayTime, details.Reference,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your interview is confirmed for <strong>%s</strong>.</p><p>A calendar invite is attached.</p><p>Booking reference: %s</p>",
		details.Name, displayTime, details.Reference,
	)
	message.AddContent(
		mail.NewContent("text/plain", plain),
		mail.NewContent("text/html", html),
	)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString([]byte(inviteContent)))
	attachment.SetType("text/calendar; method=REQUEST")
	attachment.SetFilename("invite.ics")
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	request := sendgrid.GetRequest(m.APIKey, sendEndpoint, m.Host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(message)

	response, err := m.client.SendWithContext(ctx, request)
	if err != nil {
		return &SendError{Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		utils.GetLogger().Warn("Mail transport returned non-success status",
			zap.Int("status", response.StatusCode),
			zap.String("reference", details.Reference))
		return &SendError{StatusCode: response.StatusCode, Body: response.Body}
	}

	return nil
}
