package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"interviewhub/models"
)

func successEvent() models.NotificationEvent {
	return models.NotificationEvent{
		Kind:           models.BookingSucceeded,
		Reference:      "ref-123",
		ApplicantName:  "a.b",
		ApplicantEmail: "a.b@x.com",
		DisplayTime:    "21-05-2025 02:30 PM PDT",
	}
}

func failureEvent() models.NotificationEvent {
	return models.NotificationEvent{
		Kind:         models.BookingFailed,
		Reference:    "ref-123",
		ErrorMessage: "invite generation failed: status 500",
	}
}

func TestNotifyRoutesByKind(t *testing.T) {
	var bookingsHits, errorsHits int

	bookings := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bookingsHits++
		w.Write([]byte("ok"))
	}))
	defer bookings.Close()
	errorsDest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorsHits++
		w.Write([]byte("ok"))
	}))
	defer errorsDest.Close()

	n := NewSlackNotifier(bookings.URL, errorsDest.URL, 5*time.Second)

	if !n.Notify(context.Background(), successEvent()) {
		t.Error("success event not delivered")
	}
	if !n.Notify(context.Background(), failureEvent()) {
		t.Error("failure event not delivered")
	}
	if bookingsHits != 1 || errorsHits != 1 {
		t.Errorf("bookings=%d errors=%d, want 1 each", bookingsHits, errorsHits)
	}
}

func TestNotifyPayloadShape(t *testing.T) {
	var payload slackMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	n := NewSlackNotifier(ts.URL, "", 5*time.Second)
	if !n.Notify(context.Background(), successEvent()) {
		t.Fatal("not delivered")
	}

	if len(payload.Blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	text := payload.Blocks[0].Text.Text
	for _, want := range []string{"a.b@x.com", "21-05-2025 02:30 PM PDT", "ref-123"} {
		if !strings.Contains(text, want) {
			t.Errorf("payload text missing %q: %s", want, text)
		}
	}
}

func TestNotifyFailurePlaceholderEmail(t *testing.T) {
	var payload slackMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	n := NewSlackNotifier("", ts.URL, 5*time.Second)
	event := failureEvent()
	event.ApplicantEmail = ""
	if !n.Notify(context.Background(), event) {
		t.Fatal("not delivered")
	}
	if !strings.Contains(payload.Text, "unknown applicant") {
		t.Errorf("expected placeholder for unknown applicant, got %s", payload.Text)
	}
}

func TestNotifyUnconfiguredDestination(t *testing.T) {
	n := NewSlackNotifier("", "", 5*time.Second)
	if n.Notify(context.Background(), successEvent()) {
		t.Error("expected false for unconfigured bookings destination")
	}
	if n.Notify(context.Background(), failureEvent()) {
		t.Error("expected false for unconfigured errors destination")
	}
}

func TestNotifyNonOKBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid_payload"))
	}))
	defer ts.Close()

	n := NewSlackNotifier(ts.URL, "", 5*time.Second)
	if n.Notify(context.Background(), successEvent()) {
		t.Error("expected false for non-ok body")
	}
}

func TestNotifyTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	n := NewSlackNotifier(ts.URL, "", time.Second)
	if n.Notify(context.Background(), successEvent()) {
		t.Error("expected false on transport failure")
	}
}
