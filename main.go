package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewhub/config"
	"interviewhub/handlers"
	"interviewhub/middleware"
	"interviewhub/routes"
	"interviewhub/services/booking"
	"interviewhub/services/invite"
	"interviewhub/services/mailer"
	"interviewhub/services/notify"
	"interviewhub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Fail fast on a bad display zone instead of on the first booking.
	if _, err := time.LoadLocation(cfg.DisplayTimezone); err != nil {
		logger.Sugar().Fatalf("main: invalid DISPLAY_TIMEZONE %q: %v", cfg.DisplayTimezone, err)
	}

	httpTimeout := time.Duration(cfg.HTTPClientTimeoutSecs) * time.Second

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// services.
	inviteService := invite.NewDefaultInviteService(
		cfg.InviteAPIURL,
		cfg.InviteAPIToken,
		cfg.DisplayTimezone,
		httpTimeout,
	)
	mailService := mailer.NewSendGridMailer(
		cfg.SendGridAPIKey,
		cfg.MailFromEmail,
		cfg.MailFromName,
		cfg.MailCCEmail,
		cfg.DisplayTimezone,
		httpTimeout,
	)
	notifier := notify.NewSlackNotifier(
		cfg.SlackBookingsWebhookURL,
		cfg.SlackErrorsWebhookURL,
		httpTimeout,
	)

	bookingService := booking.NewDefaultBookingService(
		inviteService,
		mailService,
		notifier,
		cfg.DisplayTimezone,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, cfg.WebhookSigningSecret)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
