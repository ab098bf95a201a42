package invite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewhub/models"
)

const testZone = "America/Los_Angeles"

func testDetails(t *testing.T) models.BookingDetails {
	t.Helper()
	// 21-05-2025 14:30 in Los Angeles.
	start := time.Date(2025, 5, 21, 21, 30, 0, 0, time.UTC)
	return models.BookingDetails{
		Reference: "ref-123",
		Name:      "a.b",
		Email:     "a.b@x.com",
		Start:     start,
	}
}

func TestGenerateSendsLocalComponents(t *testing.T) {
	var got generateRequest
	var gotToken string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("apy-token")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
	}))
	defer ts.Close()

	svc := NewDefaultInviteService(ts.URL, "secret-token", testZone, 5*time.Second)
	content, err := svc.Generate(context.Background(), testDetails(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if content != "BEGIN:VCALENDAR\nEND:VCALENDAR\n" {
		t.Errorf("unexpected invite content %q", content)
	}
	if gotToken != "secret-token" {
		t.Errorf("token header = %q", gotToken)
	}
	if got.TimeZone != testZone {
		t.Errorf("time_zone = %q", got.TimeZone)
	}
	if got.MeetingDate != "21-05-2025" {
		t.Errorf("meeting_date = %q, want 21-05-2025", got.MeetingDate)
	}
	if got.StartTime != "14:30" {
		t.Errorf("start_time = %q, want 14:30", got.StartTime)
	}
	// Fixed 30 minute duration.
	if got.EndTime != "15:00" {
		t.Errorf("end_time = %q, want 15:00", got.EndTime)
	}
	if len(got.AttendeesEmails) != 1 || got.AttendeesEmails[0] != "a.b@x.com" {
		t.Errorf("attendees_emails = %v", got.AttendeesEmails)
	}
	if got.OrganizerName != "a.b" {
		t.Errorf("organizer_name = %q", got.OrganizerName)
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad payload"}`))
	}))
	defer ts.Close()

	svc := NewDefaultInviteService(ts.URL, "token", testZone, 5*time.Second)
	_, err := svc.Generate(context.Background(), testDetails(t))
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if genErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", genErr.StatusCode)
	}
	if genErr.Body != `{"error":"bad payload"}` {
		t.Errorf("Body = %q", genErr.Body)
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	// A server that is already closed produces a connection error.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	svc := NewDefaultInviteService(ts.URL, "token", testZone, time.Second)
	_, err := svc.Generate(context.Background(), testDetails(t))
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if genErr.Err == nil {
		t.Error("expected wrapped transport error")
	}
}
