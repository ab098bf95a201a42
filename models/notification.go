package models

// NotificationKind identifies the terminal outcome of a booking attempt.
type NotificationKind string

const (
	BookingSucceeded NotificationKind = "booking_succeeded"
	BookingFailed    NotificationKind = "booking_failed"
)

// NotificationEvent carries whatever partial data was derived before the
// attempt reached its terminal state. One instance per attempt.
type NotificationEvent struct {
	Kind           NotificationKind `json:"kind"`
	Reference      string           `json:"reference,omitempty"`
	ApplicantName  string           `json:"applicantName,omitempty"`
	ApplicantEmail string           `json:"applicantEmail,omitempty"`
	DisplayTime    string           `json:"displayTime,omitempty"`
	ErrorMessage   string           `json:"errorMessage,omitempty"`
}
