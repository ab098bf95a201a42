package models

import (
	"strings"
	"time"
)

// BookingRequest is the inbound webhook payload. The date and time are local
// wall-clock values in the configured display timezone.
type BookingRequest struct {
	Email         string `json:"email" validate:"required,email"`
	InterviewDate string `json:"interview_date" validate:"required"`
	InterviewTime string `json:"interview_time" validate:"required"`
}

// BookingDetails is derived once per request after the local date/time has
// been resolved into an absolute instant. Start is always UTC.
type BookingDetails struct {
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Start     time.Time `json:"start_utc"`
}

// NameFromEmail derives an applicant name from the local part of an email
// address, e.g. "a.b@x.com" -> "a.b".
func NameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
