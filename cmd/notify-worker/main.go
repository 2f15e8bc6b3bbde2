// Entry point for the notification delivery worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/config"
	"github.com/aryaman-sowilo/spine-attendance/internal/worker"
	"github.com/aryaman-sowilo/spine-attendance/internal/worker/notify"
	"github.com/aryaman-sowilo/spine-attendance/pkg/aws"
	"github.com/aryaman-sowilo/spine-attendance/pkg/logger"
	"github.com/aryaman-sowilo/spine-attendance/pkg/telemetry"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	shutdownTracer, err := telemetry.InitTracer("spine-attendance-notify-worker")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	// Initialize dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)
	mailer := notify.NewSESMailer(sesClient, cfg.SESSender, cfg.SESRecipient)
	processor := notify.NewProcessor(mailer)

	// Start worker
	ctx, cancel := context.WithCancel(context.Background())
	app := worker.NewWorker(sqsClient, cfg.NotifySQSQueueURL, processor)

	go func() {
		app.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down worker...")

	// Cancel the context to signal the worker to stop polling.
	cancel()

	log.Info().Msg("Worker exited gracefully")
}
