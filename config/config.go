package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Display timezone used for every human-facing local representation.
	DisplayTimezone string `mapstructure:"DISPLAY_TIMEZONE"`

	// Invite generation service.
	InviteAPIURL   string `mapstructure:"INVITE_API_URL"`
	InviteAPIToken string `mapstructure:"INVITE_API_TOKEN"`

	// Mail delivery.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFromEmail  string `mapstructure:"MAIL_FROM_EMAIL"`
	MailFromName   string `mapstructure:"MAIL_FROM_NAME"`
	MailCCEmail    string `mapstructure:"MAIL_CC_EMAIL"`

	// Slack incoming webhooks for status notifications.
	SlackBookingsWebhookURL string `mapstructure:"SLACK_BOOKINGS_WEBHOOK_URL"`
	SlackErrorsWebhookURL   string `mapstructure:"SLACK_ERRORS_WEBHOOK_URL"`

	// Inbound webhook signature verification; disabled when empty.
	WebhookSigningSecret string `mapstructure:"WEBHOOK_SIGNING_SECRET"`

	// Timeout applied to every outbound HTTP call, in seconds.
	HTTPClientTimeoutSecs int `mapstructure:"HTTP_CLIENT_TIMEOUT_SECS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DISPLAY_TIMEZONE", "America/Los_Angeles")
	viper.SetDefault("INVITE_API_URL", "https://api.apyhub.com/generate/ical/file?output=invite.ics")
	viper.SetDefault("MAIL_FROM_EMAIL", "bookings@interviewhub.io")
	viper.SetDefault("MAIL_FROM_NAME", "InterviewHub Bookings")
	viper.SetDefault("MAIL_CC_EMAIL", "recruiting@interviewhub.io")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT_SECS", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
