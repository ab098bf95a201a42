package booking

import (
	"context"
	"errors"
	"time"

	"interviewhub/models"
	"interviewhub/services/invite"
	"interviewhub/services/mailer"
	"interviewhub/services/notify"
	"interviewhub/services/timeconv"
	"interviewhub/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// How the interview time is rendered in notifications.
const displayPattern = "DD-MM-YYYY hh:mm A z"

// Service drives a booking attempt end to end: validate, resolve the local
// time to an instant, generate the invite, email it, and report the outcome.
type Service interface {
	Process(ctx context.Context, req models.BookingRequest) (*models.BookingDetails, error)
}

// DefaultBookingService is the production implementation. Stages run
// strictly sequentially; outcome notification is dispatched on a detached
// goroutine and never affects the returned result.
type DefaultBookingService struct {
	Invite   invite.Service
	Mailer   mailer.Service
	Notifier notify.Service
	Zone     string

	validate      *validator.Validate
	notifyTimeout time.Duration
}

func NewDefaultBookingService(inviteSvc invite.Service, mailerSvc mailer.Service, notifier notify.Service, zone string) *DefaultBookingService {
	return &DefaultBookingService{
		Invite:        inviteSvc,
		Mailer:        mailerSvc,
		Notifier:      notifier,
		Zone:          zone,
		validate:      validator.New(),
		notifyTimeout: 10 * time.Second,
	}
}

// jsonFieldNames maps BookingRequest struct fields to their wire names, so
// validation errors name the fields the caller actually sent.
var jsonFieldNames = map[string]string{
	"Email":         "email",
	"InterviewDate": "interview_date",
	"InterviewTime": "interview_time",
}

// Process runs the pipeline. Input errors (validation) return before any
// outbound call; every later failure and every success dispatches exactly
// one outcome notification.
func (s *DefaultBookingService) Process(ctx context.Context, req models.BookingRequest) (*models.BookingDetails, error) {
	logger := utils.GetLogger()

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				name := jsonFieldNames[fe.StructField()]
				if name == "" {
					name = fe.StructField()
				}
				fields = append(fields, name)
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, &ValidationError{Fields: []string{"email", "interview_date", "interview_time"}}
	}

	details := models.BookingDetails{
		Reference: uuid.New().String(),
		Name:      models.NameFromEmail(req.Email),
		Email:     req.Email,
	}

	start, err := timeconv.ToInstant(req.InterviewDate, req.InterviewTime, s.Zone)
	if err != nil {
		resErr := &TimeResolutionError{Err: err}
		logger.Warn("Failed to resolve interview time",
			zap.String("reference", details.Reference),
			zap.String("date", req.InterviewDate),
			zap.String("time", req.InterviewTime),
			zap.Error(err))
		s.dispatchNotification(s.failureEvent(details, resErr))
		return nil, resErr
	}
	details.Start = start

	inviteContent, err := s.Invite.Generate(ctx, details)
	if err != nil {
		logger.Error("Invite generation failed",
			zap.String("reference", details.Reference),
			zap.Error(err))
		s.dispatchNotification(s.failureEvent(details, err))
		return nil, err
	}

	if err := s.Mailer.SendConfirmation(ctx, details, inviteContent); err != nil {
		logger.Error("Confirmation email failed",
			zap.String("reference", details.Reference),
			zap.Error(err))
		s.dispatchNotification(s.failureEvent(details, err))
		return nil, err
	}

	displayTime, err := timeconv.Format(details.Start, s.Zone, displayPattern)
	if err != nil {
		// The zone was already validated by ToInstant; keep the booking.
		logger.Error("Failed to format display time", zap.Error(err))
	}

	logger.Info("Booking completed",
		zap.String("reference", details.Reference),
		zap.String("email", details.Email),
		zap.Time("start", details.Start))

	s.dispatchNotification(models.NotificationEvent{
		Kind:           models.BookingSucceeded,
		Reference:      details.Reference,
		ApplicantName:  details.Name,
		ApplicantEmail: details.Email,
		DisplayTime:    displayTime,
	})

	return &details, nil
}

func (s *DefaultBookingService) failureEvent(details models.BookingDetails, err error) models.NotificationEvent {
	return models.NotificationEvent{
		Kind:           models.BookingFailed,
		Reference:      details.Reference,
		ApplicantName:  details.Name,
		ApplicantEmail: details.Email,
		ErrorMessage:   err.Error(),
	}
}

// dispatchNotification runs delivery on a detached goroutine with its own
// context, so the caller's response is never delayed by it and cancellation
// of the request context does not abort it.
func (s *DefaultBookingService) dispatchNotification(event models.NotificationEvent) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.GetLogger().Error("Panic in notification dispatch", zap.Any("error", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		s.Notifier.Notify(ctx, event)
	}()
}
