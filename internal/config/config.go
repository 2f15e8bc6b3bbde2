package config

import (
	"github.com/spf13/viper"
)

// The service runs as a single pod per person; everything is configured
// through environment variables. AWS config and the queue URL are handled
// the same way.

type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	DriverURL          string `mapstructure:"DRIVER_URL"`
	NotifySQSQueueURL  string `mapstructure:"NOTIFY_SQS_QUEUE_URL"`
	SESSender          string `mapstructure:"SES_SENDER"`
	SESRecipient       string `mapstructure:"SES_RECIPIENT"`
	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSEndpoint        string `mapstructure:"AWS_ENDPOINT"`
	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	HolidayFile        string `mapstructure:"HOLIDAY_FILE"`
	ReminderLeadMins   int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	GapScanDays        int    `mapstructure:"GAP_SCAN_DAYS"`
	SwipeFetchLimit    int    `mapstructure:"SWIPE_FETCH_LIMIT"`
	IsLocalDev         bool   `mapstructure:"IS_LOCAL_DEV"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DRIVER_URL", "http://localhost:8090")
	viper.SetDefault("NOTIFY_SQS_QUEUE_URL", "http://localstack:4566/000000000000/notify-queue")
	viper.SetDefault("SES_SENDER", "assistant@spine-attendance.local")
	viper.SetDefault("SES_RECIPIENT", "me@spine-attendance.local")
	viper.SetDefault("AWS_REGION", "us-east-1") // Default region for AWS services
	viper.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("HOLIDAY_FILE", "holidays.yaml")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 5)
	viper.SetDefault("GAP_SCAN_DAYS", 30)
	viper.SetDefault("SWIPE_FETCH_LIMIT", 50)
	viper.SetDefault("IS_LOCAL_DEV", false)

	// Read in environment variables that match the keys.
	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	return
}
