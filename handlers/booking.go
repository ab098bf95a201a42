package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"interviewhub/models"
	"interviewhub/services/booking"
	"interviewhub/services/invite"
	"interviewhub/services/mailer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking webhook endpoint.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// BookEmail handles POST /book-email. Downstream failure detail is logged
// but never echoed to the caller.
func (h *BookingHandler) BookEmail(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return
	}

	details, err := h.Service.Process(c.Request.Context(), req)
	if err != nil {
		status, message := h.mapError(err)
		c.JSON(status, gin.H{"success": false, "error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Booking confirmed; calendar invite sent to %s", details.Email),
	})
}

// mapError turns a pipeline error into a status code and a caller-visible
// message that avoids leaking downstream-service internals.
func (h *BookingHandler) mapError(err error) (int, string) {
	var validationErr *booking.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var timeErr *booking.TimeResolutionError
	if errors.As(err, &timeErr) {
		return http.StatusBadRequest, "invalid interview date or time; expected DD-MM-YYYY and HH:MM"
	}

	var genErr *invite.GenerationError
	if errors.As(err, &genErr) {
		h.Logger.Error("Invite generation error", zap.Error(err))
		return http.StatusInternalServerError, "failed to generate calendar invite"
	}

	var sendErr *mailer.SendError
	if errors.As(err, &sendErr) {
		h.Logger.Error("Email send error", zap.Error(err))
		return http.StatusInternalServerError, "failed to send confirmation email"
	}

	h.Logger.Error("Unexpected booking error", zap.Error(err))
	return http.StatusInternalServerError, "booking could not be completed"
}
